package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/service"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Get 排行榜
// GET /api/leaderboard?limit=
func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.ParamError(c, "limit 必须是非负整数")
			return
		}
		limit = n
	}

	entries, err := h.leaderboardService.Get(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, entries)
}
