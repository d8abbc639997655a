package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/pkg/pubsub"
)

// LeaderboardInvalidator 积分变化后让排行榜缓存失效
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context) error
}

// EventPublisher 发布账本事件
type EventPublisher interface {
	Publish(ctx context.Context, event *pubsub.LedgerEvent) error
}

// LedgerHooks 积分写入后的附加动作，都可以为空，失败只记录日志
type LedgerHooks struct {
	Cache  LeaderboardInvalidator
	Events EventPublisher
}

func (h LedgerHooks) afterWrite(ctx context.Context, logger *zap.Logger, event *pubsub.LedgerEvent, pointsChanged bool) {
	if pointsChanged && h.Cache != nil {
		if err := h.Cache.Invalidate(ctx); err != nil {
			logger.Warn("Failed to invalidate leaderboard cache", zap.Error(err))
		}
	}
	if h.Events != nil {
		if err := h.Events.Publish(ctx, event); err != nil {
			logger.Warn("Failed to publish ledger event",
				zap.String("type", event.Type),
				zap.String("userID", event.UserID),
				zap.Error(err))
		}
	}
}
