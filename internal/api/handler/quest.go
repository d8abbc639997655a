package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/castquest_server/internal/api/middleware"
	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/service"
)

type QuestHandler struct {
	questService *service.QuestService
}

func NewQuestHandler(questService *service.QuestService) *QuestHandler {
	return &QuestHandler{
		questService: questService,
	}
}

// Complete 完成任务
// POST /api/quests/complete
func (h *QuestHandler) Complete(c *gin.Context) {
	var req dto.CompleteQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	if !middleware.SameUser(c, req.UserID) {
		return
	}

	resp, err := h.questService.Complete(c.Request.Context(), req.UserID, req.QuestType)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// Status 用户任务状态
// GET /api/quests/user/:userId
func (h *QuestHandler) Status(c *gin.Context) {
	status, err := h.questService.Status(c.Request.Context(), c.Param("userId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, status)
}
