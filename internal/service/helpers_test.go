package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/qs3c/castquest_server/config"
	"github.com/qs3c/castquest_server/internal/pkg/pubsub"
	"github.com/qs3c/castquest_server/internal/pkg/resetclock"
	"github.com/qs3c/castquest_server/internal/repository"
	"github.com/qs3c/castquest_server/internal/testutil"
)

// testClock 可手动推进的时钟
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{now: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*pubsub.LedgerEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *pubsub.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}

func (c *countingInvalidator) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// ledgerFixture 基于 sqlite 的服务集合，时间由 clock 控制
type ledgerFixture struct {
	db      *gorm.DB
	repos   *repository.Repositories
	clock   *testClock
	quests  *QuestService
	limits  *CastLimitService
	board   *LeaderboardService
	sbt     *SbtService
	users   *UserService
	drafts  *DraftService
	events  *recordingPublisher
	invalid *countingInvalidator
}

func setupLedger(t *testing.T, start time.Time) (*ledgerFixture, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	f := newLedgerFixture(repository.NewRepositories(db), start)
	f.db = db

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return f, cleanup
}

func newLedgerFixture(repos *repository.Repositories, start time.Time) *ledgerFixture {
	logger := zap.NewNop()
	clock := newTestClock(start)
	events := &recordingPublisher{}
	invalid := &countingInvalidator{}
	hooks := LedgerHooks{Cache: invalid, Events: events}

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1}}

	f := &ledgerFixture{
		repos:   repos,
		clock:   clock,
		quests:  NewQuestService(repos.Quests, repos.Users, hooks, logger),
		limits:  NewCastLimitService(repos.CastLimits, resetclock.Default(), hooks, logger),
		board:   NewLeaderboardService(repos.Quests, repos.Badges, nil, 4, logger),
		users:   NewUserService(repos.Users, nil, cfg, logger),
		drafts:  NewDraftService(repos.Drafts),
		events:  events,
		invalid: invalid,
	}
	f.sbt = NewSbtService(repos.Badges, repos.Users, f.quests, hooks, logger)

	f.quests.now = clock.Now
	f.limits.now = clock.Now
	f.board.now = clock.Now
	f.sbt.now = clock.Now
	return f
}
