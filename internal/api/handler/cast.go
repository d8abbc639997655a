package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/service"
)

type CastHandler struct {
	castService  *service.CastService
	limitService *service.CastLimitService
}

func NewCastHandler(castService *service.CastService, limitService *service.CastLimitService) *CastHandler {
	return &CastHandler{
		castService:  castService,
		limitService: limitService,
	}
}

// LimitStatus 今日发布次数
// GET /api/cast-limits/:userId
func (h *CastHandler) LimitStatus(c *gin.Context) {
	status, err := h.limitService.Status(c.Request.Context(), c.Param("userId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, status)
}

// Publish 准备发布草稿
// POST /api/farcaster/cast
func (h *CastHandler) Publish(c *gin.Context) {
	var req dto.PublishCastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.castService.Publish(c.Request.Context(), &req)
	if err != nil {
		// 草稿存在但作者已不存在，视为请求无效
		if errors.Is(err, service.ErrUserNotFound) {
			response.ParamError(c, err.Error())
			return
		}
		handleServiceError(c, err)
		return
	}

	response.Success(c, resp)
}
