package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/service"
)

// handleServiceError 把服务层错误映射为响应
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrDraftNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrQuestCooldown):
		response.RateLimitError(c, err.Error(), nil)
	case errors.Is(err, service.ErrCastLimitReached):
		response.RateLimitError(c, err.Error(), gin.H{
			"error":         "DAILY_LIMIT_EXCEEDED",
			"maxDailyCasts": model.MaxDailyCasts,
		})
	case errors.Is(err, service.ErrUnknownQuestType),
		errors.Is(err, service.ErrBelowClaimThreshold),
		errors.Is(err, service.ErrInvalidPoints),
		errors.Is(err, service.ErrWalletEmpty),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrEmptyPrompt),
		errors.Is(err, service.ErrEmptyQuery):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrGeneratorUnavailable):
		response.UnavailableError(c, err.Error())
	default:
		_ = c.Error(err)
		response.ServerError(c, err)
	}
}
