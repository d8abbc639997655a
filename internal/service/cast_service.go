package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/farcaster"
)

// demoFid 用户没有绑定 Farcaster 时使用
const demoFid = "123456"

// CastPreparer 生成发布链接
type CastPreparer interface {
	PrepareCast(fid, text, imageURL string) *farcaster.CastPreparation
}

type CastService struct {
	drafts   *DraftService
	users    *UserService
	limits   *CastLimitService
	quests   *QuestService
	preparer CastPreparer
	logger   *zap.Logger
}

func NewCastService(drafts *DraftService, users *UserService, limits *CastLimitService, quests *QuestService, preparer CastPreparer, logger *zap.Logger) *CastService {
	return &CastService{
		drafts:   drafts,
		users:    users,
		limits:   limits,
		quests:   quests,
		preparer: preparer,
		logger:   logger.Named("cast"),
	}
}

// Publish 准备草稿的发布链接，计入每日次数并奖励 daily_cast 积分
func (s *CastService) Publish(ctx context.Context, req *dto.PublishCastRequest) (*dto.PublishCastResponse, error) {
	draft, err := s.drafts.Get(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, draft.UserID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.limits.CanCast(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrCastLimitReached
	}

	fid := demoFid
	if user.FarcasterFid != nil && *user.FarcasterFid != "" {
		fid = *user.FarcasterFid
	}
	text := ""
	if draft.GeneratedContent != nil {
		text = *draft.GeneratedContent
	}
	prep := s.preparer.PrepareCast(fid, text, req.ImageURL)

	counted, err := s.limits.Increment(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("increment cast count: %w", err)
	}

	if _, err := s.quests.RecordCompletion(ctx, user.ID, model.QuestDailyCast, model.QuestPoints[model.QuestDailyCast]); err != nil {
		s.logger.Warn("Failed to credit daily cast quest",
			zap.String("userID", user.ID),
			zap.Error(err))
	}

	// 用户手动发布，草稿保持未发布状态
	if err := s.drafts.ResetPublished(ctx, draft); err != nil {
		s.logger.Warn("Failed to reset draft state", zap.String("draftID", draft.ID), zap.Error(err))
	}

	return &dto.PublishCastResponse{
		CastPreparation: prep,
		Message:         "Cast prepared for manual posting to Farcaster",
		DailyCastInfo: dto.DailyCastInfo{
			Count:     counted.Count,
			Remaining: remainingCasts(counted.Count),
			CanCast:   counted.CanCast,
			ResetIn:   counted.ResetIn,
		},
	}, nil
}
