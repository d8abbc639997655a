package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/repository"
)

const unknownUserAgent = "Unknown"

type FeedbackService struct {
	feedback repository.FeedbackStore
	logger   *zap.Logger
}

func NewFeedbackService(feedback repository.FeedbackStore, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		logger:   logger.Named("feedback"),
	}
}

// Submit 保存用户反馈
func (s *FeedbackService) Submit(ctx context.Context, req *dto.CreateFeedbackRequest, userAgent string) (*dto.CreateFeedbackResponse, error) {
	if userAgent == "" {
		userAgent = unknownUserAgent
	}

	fb := &model.Feedback{
		Type:      req.Type,
		Message:   req.Message,
		UserAgent: userAgent,
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, err
	}

	s.logger.Info("Feedback received", zap.String("id", fb.ID), zap.String("type", fb.Type))

	return &dto.CreateFeedbackResponse{
		Success: true,
		Message: "Feedback received successfully",
		ID:      fb.ID,
	}, nil
}
