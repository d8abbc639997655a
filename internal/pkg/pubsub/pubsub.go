package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelLedgerEvents = "ledger_events"
)

// 事件类型
const (
	EventQuestCompleted = "quest_completed"
	EventCastCounted    = "cast_counted"
	EventSbtMinted      = "sbt_minted"
)

// LedgerEvent 积分账本变更事件
type LedgerEvent struct {
	Type         string    `json:"type"`
	UserID       string    `json:"userId"`
	QuestType    string    `json:"questType,omitempty"`
	PointsEarned string    `json:"pointsEarned,omitempty"`
	CastCount    int       `json:"castCount,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish 发布账本事件
func (p *Publisher) Publish(ctx context.Context, event *LedgerEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}

	return p.client.Publish(ctx, ChannelLedgerEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅账本事件，阻塞直到 ctx 取消
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*LedgerEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelLedgerEvents)
	defer pubsub.Close()

	// 等待订阅确认，保证之后发布的消息不会丢
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event LedgerEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
