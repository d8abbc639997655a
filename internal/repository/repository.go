package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/castquest_server/internal/model"
)

// ErrNotFound 记录不存在，内存实现也返回同一个错误
var ErrNotFound = gorm.ErrRecordNotFound

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByWallet(ctx context.Context, walletAddress string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// UserPoints 排行榜聚合行
type UserPoints struct {
	UserID            string
	WalletAddress     string
	FarcasterUsername *string
	TotalPoints       decimal.Decimal
}

type QuestStore interface {
	Get(ctx context.Context, userID, questType string) (*model.UserQuest, error)
	ListByUser(ctx context.Context, userID string) ([]model.UserQuest, error)
	Create(ctx context.Context, quest *model.UserQuest) error
	Update(ctx context.Context, quest *model.UserQuest) error
	MarkCompleted(ctx context.Context, userID, questType string) error
	SumPoints(ctx context.Context, userID string) (decimal.Decimal, error)
	// LeaderboardTotals 按用户汇总积分，只返回总分大于 0 的用户，按首次得分先后排序
	LeaderboardTotals(ctx context.Context) ([]UserPoints, error)
}

type CastLimitStore interface {
	Get(ctx context.Context, userID, date string) (*model.DailyCastLimit, error)
	// Increment 不存在则以 1 创建，否则加 1，返回写入后的记录
	Increment(ctx context.Context, userID, date string) (*model.DailyCastLimit, error)
	DeleteBefore(ctx context.Context, date string) (int64, error)
}

type BadgeStore interface {
	GetByUser(ctx context.Context, userID string) (*model.SbtBadge, error)
	Create(ctx context.Context, badge *model.SbtBadge) error
	Update(ctx context.Context, badge *model.SbtBadge) error
}

type DraftStore interface {
	Create(ctx context.Context, draft *model.ContentDraft) error
	GetByID(ctx context.Context, id string) (*model.ContentDraft, error)
	ListByUser(ctx context.Context, userID string) ([]model.ContentDraft, error)
	Update(ctx context.Context, draft *model.ContentDraft) error
	Delete(ctx context.Context, id string) error
}

type FeedbackStore interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	List(ctx context.Context, limit int) ([]model.Feedback, error)
}

// Repositories 服务层使用的全部存储
type Repositories struct {
	Users      UserStore
	Quests     QuestStore
	CastLimits CastLimitStore
	Badges     BadgeStore
	Drafts     DraftStore
	Feedback   FeedbackStore
}

// NewRepositories 基于 gorm 的存储
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Quests:     NewQuestRepository(db),
		CastLimits: NewCastLimitRepository(db),
		Badges:     NewBadgeRepository(db),
		Drafts:     NewDraftRepository(db),
		Feedback:   NewFeedbackRepository(db),
	}
}
