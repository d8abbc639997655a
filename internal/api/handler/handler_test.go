package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/qs3c/castquest_server/config"
	"github.com/qs3c/castquest_server/internal/api/middleware"
	"github.com/qs3c/castquest_server/internal/pkg/farcaster"
	"github.com/qs3c/castquest_server/internal/pkg/httpx"
	"github.com/qs3c/castquest_server/internal/pkg/pexels"
	"github.com/qs3c/castquest_server/internal/pkg/resetclock"
	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/repository"
	"github.com/qs3c/castquest_server/internal/service"
	"github.com/qs3c/castquest_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "test-secret"

type testContext struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Directory *fakeDirectory

	Users       *service.UserService
	Quests      *service.QuestService
	CastLimits  *service.CastLimitService
	Casts       *service.CastService
	Leaderboard *service.LeaderboardService
	Sbt         *service.SbtService
	Rewards     *service.RewardService
	Drafts      *service.DraftService
	Content     *service.ContentService
	Images      *service.ImageService
	Feedback    *service.FeedbackService
}

type fakeDirectory struct {
	profile *farcaster.Profile
	hub     map[string]interface{}
	err     error
}

func (f *fakeDirectory) LookupByWallet(context.Context, string) (*farcaster.Profile, error) {
	return f.profile, f.err
}

func (f *fakeDirectory) HubProfile(context.Context, string) (map[string]interface{}, error) {
	return f.hub, f.err
}

type fakeGenerator struct {
	err error
}

func (g *fakeGenerator) GenerateContent(_ context.Context, topic, contentType, tone string) (string, error) {
	return "[" + tone + " " + contentType + "] " + topic, g.err
}

func (g *fakeGenerator) SuggestSearchTerm(context.Context, string) (string, error) {
	return "sunrise", g.err
}

func (g *fakeGenerator) GenerateText(context.Context, string) (string, error) {
	return "- Base is cheap.\n\n## Fees\nGas is low.\n\nThird paragraph.", g.err
}

func (g *fakeGenerator) ModelName() string {
	return "gemini-test"
}

type fakePhotos struct{}

func (fakePhotos) Search(_ context.Context, query string, perPage int) ([]pexels.Photo, error) {
	photos := make([]pexels.Photo, 0, perPage)
	for i := 0; i < perPage; i++ {
		photos = append(photos, pexels.Photo{ID: int64(i + 1), Alt: query})
	}
	return photos, nil
}

func (fakePhotos) Featured(_ context.Context, limit int) ([]pexels.Photo, error) {
	if limit <= 0 {
		limit = 8
	}
	return fakePhotos{}.Search(context.Background(), "featured", limit)
}

// setupTestContext 基于 sqlite 组装全部服务
func setupTestContext(t *testing.T) (*testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	logger := zap.NewNop()
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: testJWTSecret, ExpireHours: 1},
	}

	fc, err := farcaster.NewClient(httpx.New(time.Second, httpx.DefaultRetryOptions(), logger), farcaster.Options{
		ComposeURL: "https://warpcast.com/~/compose",
	}, logger)
	require.NoError(t, err)

	directory := &fakeDirectory{}
	hooks := service.LedgerHooks{}

	ctx := &testContext{DB: db, Cfg: cfg, Directory: directory}
	ctx.Users = service.NewUserService(repos.Users, directory, cfg, logger)
	ctx.Quests = service.NewQuestService(repos.Quests, repos.Users, hooks, logger)
	ctx.CastLimits = service.NewCastLimitService(repos.CastLimits, resetclock.Default(), hooks, logger)
	ctx.Drafts = service.NewDraftService(repos.Drafts)
	ctx.Casts = service.NewCastService(ctx.Drafts, ctx.Users, ctx.CastLimits, ctx.Quests, fc, logger)
	ctx.Leaderboard = service.NewLeaderboardService(repos.Quests, repos.Badges, nil, 2, logger)
	ctx.Sbt = service.NewSbtService(repos.Badges, repos.Users, ctx.Quests, hooks, logger)
	ctx.Rewards = service.NewRewardService(logger)
	ctx.Content = service.NewContentService(&fakeGenerator{}, logger)
	ctx.Images = service.NewImageService(fakePhotos{})
	ctx.Feedback = service.NewFeedbackService(repos.Feedback, logger)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return ctx, cleanup
}

func mockAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

// performJSON 发送 JSON 请求，body 为 nil 时不带请求体
func performJSON(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func dataMap(t *testing.T, resp response.Response) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return data
}
