package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/castquest_server/internal/model"
)

var walletSeq uint64

// TestWallet 生成唯一的钱包地址
func TestWallet() string {
	return fmt.Sprintf("0x%040x", atomic.AddUint64(&walletSeq, 1))
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	user := &model.User{
		WalletAddress: TestWallet(),
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithWallet 设置钱包地址
func WithWallet(wallet string) func(*model.User) {
	return func(u *model.User) {
		u.WalletAddress = wallet
	}
}

// WithFarcaster 设置 Farcaster 信息
func WithFarcaster(fid, username string) func(*model.User) {
	return func(u *model.User) {
		u.FarcasterFid = &fid
		u.FarcasterUsername = &username
	}
}

// TestQuest 创建任务记录
func TestQuest(t *testing.T, db *gorm.DB, userID, questType string, opts ...func(*model.UserQuest)) *model.UserQuest {
	t.Helper()

	now := time.Now()
	quest := &model.UserQuest{
		UserID:          userID,
		QuestType:       questType,
		LastCompletedAt: &now,
		TotalPoints:     model.QuestPoints[questType],
		CompletionCount: 1,
		IsOneTime:       model.IsOneTimeQuest(questType),
	}

	for _, opt := range opts {
		opt(quest)
	}

	if err := db.Create(quest).Error; err != nil {
		t.Fatalf("Failed to create test quest: %v", err)
	}

	return quest
}

// WithCompletedAt 设置最后完成时间
func WithCompletedAt(at time.Time) func(*model.UserQuest) {
	return func(q *model.UserQuest) {
		q.LastCompletedAt = &at
	}
}

// WithPoints 设置累计积分
func WithPoints(points string) func(*model.UserQuest) {
	return func(q *model.UserQuest) {
		q.TotalPoints = decimal.RequireFromString(points)
	}
}

// WithCompleted 标记一次性任务已完成
func WithCompleted() func(*model.UserQuest) {
	return func(q *model.UserQuest) {
		q.IsCompleted = true
	}
}

// TestDraft 创建草稿
func TestDraft(t *testing.T, db *gorm.DB, userID string, opts ...func(*model.ContentDraft)) *model.ContentDraft {
	t.Helper()

	content := "gm farcaster, building onchain today"
	draft := &model.ContentDraft{
		UserID:           userID,
		Topic:            "building onchain",
		ContentType:      "post",
		Tone:             "casual",
		GeneratedContent: &content,
	}

	for _, opt := range opts {
		opt(draft)
	}

	if err := db.Create(draft).Error; err != nil {
		t.Fatalf("Failed to create test draft: %v", err)
	}

	return draft
}

// WithContent 设置草稿内容
func WithContent(content string) func(*model.ContentDraft) {
	return func(d *model.ContentDraft) {
		d.GeneratedContent = &content
	}
}

// TestBadge 创建 SBT 徽章
func TestBadge(t *testing.T, db *gorm.DB, userID string, mintCount int) *model.SbtBadge {
	t.Helper()

	badge := &model.SbtBadge{
		UserID:    userID,
		MintCount: mintCount,
		TotalPaid: decimal.RequireFromString("0.00125").Mul(decimal.NewFromInt(int64(mintCount))),
	}

	if err := db.Create(badge).Error; err != nil {
		t.Fatalf("Failed to create test badge: %v", err)
	}

	return badge
}
