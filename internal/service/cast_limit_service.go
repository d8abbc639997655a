package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/pubsub"
	"github.com/qs3c/castquest_server/internal/pkg/resetclock"
	"github.com/qs3c/castquest_server/internal/repository"
)

var ErrCastLimitReached = errors.New("今日发布次数已达上限")

// castLimitRetentionDays 保留最近的计数记录天数
const castLimitRetentionDays = 30

type CastLimitService struct {
	limits repository.CastLimitStore
	clock  *resetclock.Clock
	hooks  LedgerHooks
	now    func() time.Time
	logger *zap.Logger
}

func NewCastLimitService(limits repository.CastLimitStore, clock *resetclock.Clock, hooks LedgerHooks, logger *zap.Logger) *CastLimitService {
	return &CastLimitService{
		limits: limits,
		clock:  clock,
		hooks:  hooks,
		now:    time.Now,
		logger: logger.Named("cast_limit"),
	}
}

// GetCount 指定账本日的发布次数
func (s *CastLimitService) GetCount(ctx context.Context, userID, ledgerDay string) (int, error) {
	limit, err := s.limits.Get(ctx, userID, ledgerDay)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return limit.CastCount, nil
}

// CanCast 当前账本日是否还能发布
func (s *CastLimitService) CanCast(ctx context.Context, userID string) (bool, error) {
	count, err := s.GetCount(ctx, userID, s.clock.LedgerDay(s.now()))
	if err != nil {
		return false, err
	}
	return count < model.MaxDailyCasts, nil
}

// Increment 当前账本日计数加一，总会写入，由调用方先检查 CanCast
func (s *CastLimitService) Increment(ctx context.Context, userID string) (*dto.CastIncrementResult, error) {
	now := s.now()

	limit, err := s.limits.Increment(ctx, userID, s.clock.LedgerDay(now))
	if err != nil {
		return nil, err
	}

	s.hooks.afterWrite(ctx, s.logger, &pubsub.LedgerEvent{
		Type:       pubsub.EventCastCounted,
		UserID:     userID,
		CastCount:  limit.CastCount,
		OccurredAt: now,
	}, false)

	return &dto.CastIncrementResult{
		Count:   limit.CastCount,
		CanCast: limit.CastCount < model.MaxDailyCasts,
		ResetIn: s.clock.SecondsUntilNextReset(now),
	}, nil
}

// Status 当前账本日的计数概览
func (s *CastLimitService) Status(ctx context.Context, userID string) (*dto.CastLimitStatus, error) {
	now := s.now()
	day := s.clock.LedgerDay(now)

	count, err := s.GetCount(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	canCast := count < model.MaxDailyCasts
	return &dto.CastLimitStatus{
		Date:          day,
		Count:         count,
		Remaining:     remainingCasts(count),
		MaxDailyCasts: model.MaxDailyCasts,
		CanCast:       canCast,
		LimitReached:  !canCast,
		ResetIn:       s.clock.SecondsUntilNextReset(now),
	}, nil
}

// PruneOld 删除保留期之前的计数
func (s *CastLimitService) PruneOld(ctx context.Context) (int64, error) {
	cutoff := s.clock.LedgerDay(s.now().AddDate(0, 0, -castLimitRetentionDays))
	return s.limits.DeleteBefore(ctx, cutoff)
}

func remainingCasts(count int) int {
	remaining := model.MaxDailyCasts - count
	if remaining < 0 {
		return 0
	}
	return remaining
}
