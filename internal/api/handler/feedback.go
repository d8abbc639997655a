package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/service"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// Submit 提交反馈
// POST /api/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.feedbackService.Submit(c.Request.Context(), &req, c.Request.UserAgent())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, resp)
}
