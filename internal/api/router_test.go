package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/config"
	"github.com/qs3c/castquest_server/internal/api/handler"
	"github.com/qs3c/castquest_server/internal/pkg/farcaster"
	"github.com/qs3c/castquest_server/internal/pkg/httpx"
	"github.com/qs3c/castquest_server/internal/pkg/pexels"
	"github.com/qs3c/castquest_server/internal/pkg/resetclock"
	"github.com/qs3c/castquest_server/internal/pkg/ws"
	"github.com/qs3c/castquest_server/internal/repository/memory"
	"github.com/qs3c/castquest_server/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noPhotos struct{}

func (noPhotos) Search(context.Context, string, int) ([]pexels.Photo, error) { return nil, nil }
func (noPhotos) Featured(context.Context, int) ([]pexels.Photo, error)       { return nil, nil }

// newTestEngine 用内存存储组装完整路由
func newTestEngine(t *testing.T) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		JWT:    config.JWTConfig{Secret: "router-secret", ExpireHours: 1},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	repos := memory.NewRepositories()
	fc, err := farcaster.NewClient(httpx.New(time.Second, httpx.DefaultRetryOptions(), logger), farcaster.Options{
		ComposeURL: "https://warpcast.com/~/compose",
	}, logger)
	require.NoError(t, err)

	hub := ws.NewHub(logger)
	hooks := service.LedgerHooks{Events: hub}

	quests := service.NewQuestService(repos.Quests, repos.Users, hooks, logger)
	limits := service.NewCastLimitService(repos.CastLimits, resetclock.Default(), hooks, logger)
	users := service.NewUserService(repos.Users, nil, cfg, logger)
	drafts := service.NewDraftService(repos.Drafts)
	casts := service.NewCastService(drafts, users, limits, quests, fc, logger)
	board := service.NewLeaderboardService(repos.Quests, repos.Badges, nil, 2, logger)
	sbt := service.NewSbtService(repos.Badges, repos.Users, quests, hooks, logger)

	router := NewRouter(&Handlers{
		User:        handler.NewUserHandler(users),
		Quest:       handler.NewQuestHandler(quests),
		Cast:        handler.NewCastHandler(casts, limits),
		Farcaster:   handler.NewFarcasterHandler(fc, logger),
		Leaderboard: handler.NewLeaderboardHandler(board),
		Reward:      handler.NewRewardHandler(sbt, service.NewRewardService(logger)),
		Draft:       handler.NewDraftHandler(drafts),
		Content:     handler.NewContentHandler(service.NewContentService(nil, logger), service.NewImageService(noPhotos{})),
		Feedback:    handler.NewFeedbackHandler(service.NewFeedbackService(repos.Feedback, logger)),
		WebSocket:   handler.NewWebSocketHandler(hub, cfg.JWT.Secret, cfg.CORS.AllowedOrigins, logger),
	}, cfg, logger)

	return router.Setup()
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, engine http.Handler, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func connect(t *testing.T, engine http.Handler, wallet string) (string, string) {
	t.Helper()

	status, env := call(t, engine, "POST", "/api/users", "", gin.H{"walletAddress": wallet})
	require.Equal(t, http.StatusOK, status)

	var user struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	require.NotEmpty(t, user.Token)
	return user.ID, user.Token
}

func TestRouter_Healthz(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRouter_QuestAndCastFlow(t *testing.T) {
	engine := newTestEngine(t)

	alice, aliceToken := connect(t, engine, "0xAlice")
	bob, bobToken := connect(t, engine, "0xBob")

	// 重复连接返回同一个用户
	again, _ := connect(t, engine, "0xAlice")
	assert.Equal(t, alice, again)

	status, _ := call(t, engine, "POST", "/api/quests/complete", aliceToken, gin.H{"userId": alice, "questType": "daily_gm"})
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, engine, "POST", "/api/quests/complete", aliceToken, gin.H{"userId": alice, "questType": "daily_gm"})
	assert.Equal(t, http.StatusTooManyRequests, status)

	// 令牌与请求用户不一致
	status, _ = call(t, engine, "POST", "/api/quests/complete", bobToken, gin.H{"userId": alice, "questType": "daily_checkin"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, engine, "POST", "/api/quests/complete", "", gin.H{"userId": bob, "questType": "nft_holding"})
	require.Equal(t, http.StatusOK, status)

	status, env := call(t, engine, "POST", "/api/drafts", aliceToken, gin.H{
		"userId": alice, "topic": "gm", "contentType": "post", "tone": "casual", "generatedContent": "gm frens",
	})
	require.Equal(t, http.StatusCreated, status)
	var draft struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &draft))

	status, env = call(t, engine, "POST", "/api/farcaster/cast", aliceToken, gin.H{"draftId": draft.ID})
	require.Equal(t, http.StatusOK, status)
	var published struct {
		FarcasterURL  string `json:"farcasterUrl"`
		DailyCastInfo struct {
			Count     int `json:"count"`
			Remaining int `json:"remaining"`
		} `json:"dailyCastInfo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &published))
	assert.Contains(t, published.FarcasterURL, "gm%20frens")
	assert.Equal(t, 1, published.DailyCastInfo.Count)
	assert.Equal(t, 9, published.DailyCastInfo.Remaining)

	status, env = call(t, engine, "GET", "/api/quests/user/"+alice, "", nil)
	require.Equal(t, http.StatusOK, status)
	var questStatus struct {
		TotalPoints    string `json:"totalPoints"`
		DailyCastCount int    `json:"dailyCastCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &questStatus))
	assert.Equal(t, "1.25", questStatus.TotalPoints)
	assert.Equal(t, 1, questStatus.DailyCastCount)

	status, env = call(t, engine, "GET", "/api/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, status)
	var board []struct {
		ID   string `json:"id"`
		Rank int    `json:"rank"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &board))
	require.Len(t, board, 2)
	assert.Equal(t, bob, board[0].ID)
	assert.Equal(t, alice, board[1].ID)
	assert.Equal(t, 2, board[1].Rank)
}

func TestRouter_NotFound(t *testing.T) {
	engine := newTestEngine(t)

	status, _ := call(t, engine, "GET", "/api/drafts/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, engine, "POST", "/api/farcaster/cast", "", gin.H{"draftId": "missing"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, engine, "GET", "/api/users/0xNobody", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_PatchOtherUserForbidden(t *testing.T) {
	engine := newTestEngine(t)

	alice, _ := connect(t, engine, "0xAlice")
	_, bobToken := connect(t, engine, "0xBob")

	status, _ := call(t, engine, "PATCH", "/api/users/"+alice, bobToken, gin.H{"baseUsername": "bob.base"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, engine, "GET", "/api/drafts/user/"+alice, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRouter_WebSocketRequiresToken(t *testing.T) {
	engine := newTestEngine(t)

	status, _ := call(t, engine, "GET", "/api/ws", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
