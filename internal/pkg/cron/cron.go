package cron

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/pkg/resetclock"
)

// CastLimitPruner 删除过期的每日发布计数
type CastLimitPruner interface {
	PruneOld(ctx context.Context) (int64, error)
}

// CacheInvalidator 排行榜缓存失效
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	pruner CastLimitPruner
	cache  CacheInvalidator
	clock  *resetclock.Clock
	now    func() time.Time
	logger *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewService(pruner CastLimitPruner, cache CacheInvalidator, clock *resetclock.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		pruner:   pruner,
		cache:    cache,
		clock:    clock,
		now:      time.Now,
		logger:   logger.Named("cron"),
		stopChan: make(chan struct{}),
	}
}

// Start 启动每日重置任务
func (s *Service) Start() {
	s.wg.Add(1)
	go s.runDailyRollover()
	s.logger.Info("Cron service started", zap.String("timezone", s.clock.Location().String()))
}

// Stop 停止定时任务并等待退出
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	s.logger.Info("Cron service stopped")
}

// runDailyRollover 在每天 03:00 (账本时区) 执行
func (s *Service) runDailyRollover() {
	defer s.wg.Done()

	timer := time.NewTimer(s.untilNextReset())
	defer timer.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-timer.C:
			s.RunNow(context.Background())
			timer.Reset(s.untilNextReset())
		}
	}
}

func (s *Service) untilNextReset() time.Duration {
	now := s.now()
	d := s.clock.NextReset(now).Sub(now)
	if d <= 0 {
		d = time.Second
	}
	return d
}

// RunNow 立即执行一次（用于测试或手动触发）
func (s *Service) RunNow(ctx context.Context) {
	s.logger.Info("Starting ledger day rollover", zap.String("ledgerDay", s.clock.LedgerDay(s.now())))

	if s.pruner != nil {
		removed, err := s.pruner.PruneOld(ctx)
		if err != nil {
			s.logger.Error("Failed to prune cast limits", zap.Error(err))
		} else if removed > 0 {
			s.logger.Info("Pruned cast limits", zap.Int64("removed", removed))
		}
	}

	// 连续天数按天变化，排行榜快照需要重算
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate leaderboard cache", zap.Error(err))
		}
	}
}
