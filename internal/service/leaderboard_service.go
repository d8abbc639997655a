package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/repository"
)

// LeaderboardCache 按代号存取的排行榜快照，失效时代号递增
type LeaderboardCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, dest interface{}) (bool, error)
	Set(ctx context.Context, gen int64, value interface{}) error
}

type LeaderboardService struct {
	quests  repository.QuestStore
	badges  repository.BadgeStore
	cache   LeaderboardCache
	workers int
	now     func() time.Time
	logger  *zap.Logger
}

func NewLeaderboardService(quests repository.QuestStore, badges repository.BadgeStore, cache LeaderboardCache, workers int, logger *zap.Logger) *LeaderboardService {
	if workers <= 0 {
		workers = 1
	}
	return &LeaderboardService{
		quests:  quests,
		badges:  badges,
		cache:   cache,
		workers: workers,
		now:     time.Now,
		logger:  logger.Named("leaderboard"),
	}
}

// Get 返回排行榜，limit <= 0 表示全部
func (s *LeaderboardService) Get(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	entries, err := s.cached(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *LeaderboardService) cached(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	if s.cache == nil {
		return s.Build(ctx)
	}

	// 先取代号再构建，构建期间的失效会让这次快照写到旧代号下
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("Failed to read leaderboard cache generation", zap.Error(err))
		return s.Build(ctx)
	}

	var entries []dto.LeaderboardEntry
	hit, err := s.cache.Get(ctx, gen, &entries)
	if err != nil {
		s.logger.Warn("Failed to read leaderboard cache", zap.Error(err))
	} else if hit {
		return entries, nil
	}

	entries, err = s.Build(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, gen, entries); err != nil {
		s.logger.Warn("Failed to write leaderboard cache", zap.Error(err))
	}
	return entries, nil
}

// Build 汇总积分、连续天数与 SBT 持有情况并排名
func (s *LeaderboardService) Build(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	totals, err := s.quests.LeaderboardTotals(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	mapper := iter.Mapper[repository.UserPoints, dto.LeaderboardEntry]{MaxGoroutines: s.workers}
	entries, err := mapper.MapErr(totals, func(row *repository.UserPoints) (dto.LeaderboardEntry, error) {
		return s.buildEntry(ctx, row, now)
	})
	if err != nil {
		return nil, err
	}

	// 同分保持首次得分的先后顺序
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints.GreaterThan(entries[j].TotalPoints)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *LeaderboardService) buildEntry(ctx context.Context, row *repository.UserPoints, now time.Time) (dto.LeaderboardEntry, error) {
	quests, err := s.quests.ListByUser(ctx, row.UserID)
	if err != nil {
		return dto.LeaderboardEntry{}, err
	}

	hasSbt := false
	badge, err := s.badges.GetByUser(ctx, row.UserID)
	switch {
	case err == nil:
		hasSbt = badge.MintCount > 0
	case !errors.Is(err, repository.ErrNotFound):
		return dto.LeaderboardEntry{}, err
	}

	return dto.LeaderboardEntry{
		ID:            row.UserID,
		WalletAddress: row.WalletAddress,
		Username:      row.FarcasterUsername,
		TotalPoints:   row.TotalPoints,
		Streak:        streakFromQuests(quests, now),
		WeeklyPoints:  row.TotalPoints,
		MonthlyPoints: row.TotalPoints,
		YearlyPoints:  row.TotalPoints,
		HasSbt:        hasSbt,
	}, nil
}
