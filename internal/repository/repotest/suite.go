// Package repotest 存储实现的通用测试，gorm 与内存实现共用
package repotest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/repository"
)

// Factory 每个子测试创建一份干净的存储
type Factory func(t *testing.T) *repository.Repositories

// Run 执行全部存储用例
func Run(t *testing.T, newRepos Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newRepos(t)) })
	t.Run("Quests", func(t *testing.T) { testQuests(t, newRepos(t)) })
	t.Run("LeaderboardTotals", func(t *testing.T) { testLeaderboardTotals(t, newRepos(t)) })
	t.Run("CastLimits", func(t *testing.T) { testCastLimits(t, newRepos(t)) })
	t.Run("CastLimitsConcurrentFirstCast", func(t *testing.T) { testCastLimitsConcurrent(t, newRepos(t)) })
	t.Run("Badges", func(t *testing.T) { testBadges(t, newRepos(t)) })
	t.Run("Drafts", func(t *testing.T) { testDrafts(t, newRepos(t)) })
	t.Run("Feedback", func(t *testing.T) { testFeedback(t, newRepos(t)) })
}

func createUser(t *testing.T, repos *repository.Repositories, wallet string) *model.User {
	t.Helper()

	user := &model.User{WalletAddress: wallet}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	require.NotEmpty(t, user.ID)
	return user
}

func createQuest(t *testing.T, repos *repository.Repositories, userID, questType, points string, createdAt time.Time) {
	t.Helper()

	quest := &model.UserQuest{
		UserID:          userID,
		QuestType:       questType,
		LastCompletedAt: &createdAt,
		TotalPoints:     decimal.RequireFromString(points),
		CompletionCount: 1,
		IsOneTime:       model.IsOneTimeQuest(questType),
		CreatedAt:       createdAt,
	}
	require.NoError(t, repos.Quests.Create(context.Background(), quest))
}

func testUsers(t *testing.T, repos *repository.Repositories) {
	ctx := context.Background()
	user := createUser(t, repos, "0xaaa")

	found, err := repos.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "0xaaa", found.WalletAddress)

	found, err = repos.Users.GetByWallet(ctx, "0xaaa")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repos.Users.GetByWallet(ctx, "0xmissing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repos.Users.GetByID(ctx, model.NewID())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// 钱包地址唯一
	err = repos.Users.Create(ctx, &model.User{WalletAddress: "0xaaa"})
	assert.Error(t, err)

	username := "alice"
	found.FarcasterUsername = &username
	found.FollowerCount = 42
	require.NoError(t, repos.Users.Update(ctx, found))

	updated, err := repos.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.FarcasterUsername)
	assert.Equal(t, "alice", *updated.FarcasterUsername)
	assert.Equal(t, 42, updated.FollowerCount)
}

func testQuests(t *testing.T, repos *repository.Repositories) {
	ctx := context.Background()
	user := createUser(t, repos, "0xbbb")
	now := time.Now()

	_, err := repos.Quests.Get(ctx, user.ID, model.QuestDailyCheckin)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	total, err := repos.Quests.SumPoints(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	createQuest(t, repos, user.ID, model.QuestDailyCheckin, "1", now)
	createQuest(t, repos, user.ID, model.QuestDailyGM, "0.25", now.Add(time.Second))
	createQuest(t, repos, user.ID, model.QuestFollowX, "1", now.Add(2*time.Second))

	quest, err := repos.Quests.Get(ctx, user.ID, model.QuestDailyCheckin)
	require.NoError(t, err)
	quest.CompletionCount++
	quest.TotalPoints = quest.TotalPoints.Add(decimal.NewFromInt(1))
	require.NoError(t, repos.Quests.Update(ctx, quest))

	quest, err = repos.Quests.Get(ctx, user.ID, model.QuestDailyCheckin)
	require.NoError(t, err)
	assert.Equal(t, 2, quest.CompletionCount)
	assert.True(t, decimal.NewFromInt(2).Equal(quest.TotalPoints), "got %s", quest.TotalPoints)

	total, err = repos.Quests.SumPoints(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3.25").Equal(total), "got %s", total)

	require.NoError(t, repos.Quests.MarkCompleted(ctx, user.ID, model.QuestFollowX))
	quest, err = repos.Quests.Get(ctx, user.ID, model.QuestFollowX)
	require.NoError(t, err)
	assert.True(t, quest.IsCompleted)
	assert.True(t, quest.IsOneTime)

	// 没有记录时标记完成不报错
	assert.NoError(t, repos.Quests.MarkCompleted(ctx, user.ID, model.QuestAddMiniApp))

	quests, err := repos.Quests.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, quests, 3)
}

func testLeaderboardTotals(t *testing.T, repos *repository.Repositories) {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	first := createUser(t, repos, "0x001")
	second := createUser(t, repos, "0x002")
	zero := createUser(t, repos, "0x003")
	createUser(t, repos, "0x004") // 没有任何任务记录

	createQuest(t, repos, first.ID, model.QuestDailyCheckin, "1", base)
	createQuest(t, repos, second.ID, model.QuestMintSBT, "50", base.Add(time.Minute))
	createQuest(t, repos, first.ID, model.QuestDailyGM, "0.25", base.Add(2*time.Minute))
	createQuest(t, repos, zero.ID, model.QuestShareApp, "0", base.Add(3*time.Minute))

	rows, err := repos.Quests.LeaderboardTotals(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, first.ID, rows[0].UserID)
	assert.Equal(t, "0x001", rows[0].WalletAddress)
	assert.True(t, decimal.RequireFromString("1.25").Equal(rows[0].TotalPoints), "got %s", rows[0].TotalPoints)
	assert.Equal(t, second.ID, rows[1].UserID)
	assert.True(t, decimal.NewFromInt(50).Equal(rows[1].TotalPoints))
}

func testCastLimits(t *testing.T, repos *repository.Repositories) {
	ctx := context.Background()
	user := createUser(t, repos, "0xccc")

	_, err := repos.CastLimits.Get(ctx, user.ID, "2024-01-15")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	limit, err := repos.CastLimits.Increment(ctx, user.ID, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 1, limit.CastCount)

	limit, err = repos.CastLimits.Increment(ctx, user.ID, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2, limit.CastCount)

	// 不同账本日独立计数
	limit, err = repos.CastLimits.Increment(ctx, user.ID, "2024-01-16")
	require.NoError(t, err)
	assert.Equal(t, 1, limit.CastCount)

	limit, err = repos.CastLimits.Get(ctx, user.ID, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2, limit.CastCount)

	deleted, err := repos.CastLimits.DeleteBefore(ctx, "2024-01-16")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repos.CastLimits.Get(ctx, user.ID, "2024-01-15")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testCastLimitsConcurrent(t *testing.T, repos *repository.Repositories) {
	ctx := context.Background()
	user := createUser(t, repos, "0xcc2")

	const casts = 8
	var wg sync.WaitGroup
	errs := make(chan error, casts)
	for i := 0; i < casts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.CastLimits.Increment(ctx, user.ID, "2024-02-01")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	limit, err := repos.CastLimits.Get(ctx, user.ID, "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, casts, limit.CastCount)
}

func testBadges(t *testing.T, repos *repository.Repositories) {
	ctx := context.Background()
	user := createUser(t, repos, "0xddd")

	_, err := repos.Badges.GetByUser(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	now := time.Now()
	badge := &model.SbtBadge{
		UserID:       user.ID,
		MintCount:    1,
		TotalPaid:    decimal.RequireFromString("0.00125"),
		LastMintedAt: &now,
	}
	require.NoError(t, repos.Badges.Create(ctx, badge))

	badge.MintCount = 2
	badge.TotalPaid = badge.TotalPaid.Add(decimal.RequireFromString("0.00125"))
	require.NoError(t, repos.Badges.Update(ctx, badge))

	found, err := repos.Badges.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.MintCount)
	assert.True(t, decimal.RequireFromString("0.0025").Equal(found.TotalPaid), "got %s", found.TotalPaid)
}

func testDrafts(t *testing.T, repos *repository.Repositories) {
	ctx := context.Background()
	user := createUser(t, repos, "0xeee")
	base := time.Now().Add(-time.Hour)

	older := &model.ContentDraft{UserID: user.ID, Topic: "older", ContentType: "post", Tone: "casual", CreatedAt: base}
	newer := &model.ContentDraft{UserID: user.ID, Topic: "newer", ContentType: "thread", Tone: "professional", CreatedAt: base.Add(time.Minute)}
	require.NoError(t, repos.Drafts.Create(ctx, older))
	require.NoError(t, repos.Drafts.Create(ctx, newer))

	drafts, err := repos.Drafts.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "newer", drafts[0].Topic)

	content := "hello"
	older.GeneratedContent = &content
	older.IsPublished = true
	require.NoError(t, repos.Drafts.Update(ctx, older))

	found, err := repos.Drafts.GetByID(ctx, older.ID)
	require.NoError(t, err)
	require.NotNil(t, found.GeneratedContent)
	assert.Equal(t, "hello", *found.GeneratedContent)
	assert.True(t, found.IsPublished)

	require.NoError(t, repos.Drafts.Delete(ctx, older.ID))
	_, err = repos.Drafts.GetByID(ctx, older.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repos.Drafts.Delete(ctx, older.ID), repository.ErrNotFound)
}

func testFeedback(t *testing.T, repos *repository.Repositories) {
	ctx := context.Background()

	require.NoError(t, repos.Feedback.Create(ctx, &model.Feedback{Type: "bug", Message: "first"}))
	require.NoError(t, repos.Feedback.Create(ctx, &model.Feedback{Type: "feature", Message: "second"}))

	items, err := repos.Feedback.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = repos.Feedback.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
