package ws

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/pkg/pubsub"
)

// LedgerEventHandler 把账本事件推送给对应用户的连接
func (h *Hub) LedgerEventHandler() func(*pubsub.LedgerEvent) {
	return func(event *pubsub.LedgerEvent) {
		if !h.IsOnline(event.UserID) {
			return
		}
		if err := h.SendToUser(event.UserID, &Message{Type: event.Type, Data: event}); err != nil {
			h.logger.Warn("Failed to push ledger event",
				zap.String("userID", event.UserID),
				zap.String("type", event.Type),
				zap.Error(err))
		}
	}
}

// Publish 单机部署（未启用 Redis）时直接推送给本进程的连接
func (h *Hub) Publish(_ context.Context, event *pubsub.LedgerEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	h.LedgerEventHandler()(event)
	return nil
}
