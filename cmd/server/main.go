package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/config"
	"github.com/qs3c/castquest_server/internal/api"
	"github.com/qs3c/castquest_server/internal/api/handler"
	"github.com/qs3c/castquest_server/internal/database"
	"github.com/qs3c/castquest_server/internal/pkg/cache"
	"github.com/qs3c/castquest_server/internal/pkg/cron"
	"github.com/qs3c/castquest_server/internal/pkg/farcaster"
	"github.com/qs3c/castquest_server/internal/pkg/gemini"
	"github.com/qs3c/castquest_server/internal/pkg/httpx"
	"github.com/qs3c/castquest_server/internal/pkg/logger"
	"github.com/qs3c/castquest_server/internal/pkg/pexels"
	"github.com/qs3c/castquest_server/internal/pkg/pubsub"
	"github.com/qs3c/castquest_server/internal/pkg/resetclock"
	"github.com/qs3c/castquest_server/internal/pkg/ws"
	"github.com/qs3c/castquest_server/internal/repository"
	"github.com/qs3c/castquest_server/internal/repository/memory"
	"github.com/qs3c/castquest_server/internal/service"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Mode, cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 存储
	var repos *repository.Repositories
	switch cfg.Database.Driver {
	case "memory":
		repos = memory.NewRepositories()
		zlog.Warn("Using in-memory store, data is lost on restart")
	default:
		db, err := database.NewPostgres(&cfg.Database)
		if err != nil {
			zlog.Fatal("Failed to connect database", zap.Error(err))
		}
		if err := database.AutoMigrate(db); err != nil {
			zlog.Fatal("Failed to migrate database", zap.Error(err))
		}
		repos = repository.NewRepositories(db)
		zlog.Info("Database connected", zap.String("host", cfg.Database.Host))
	}

	clock, err := resetclock.New(cfg.Ledger.Timezone)
	if err != nil {
		zlog.Fatal("Invalid ledger timezone", zap.String("timezone", cfg.Ledger.Timezone), zap.Error(err))
	}

	wsHub := ws.NewHub(zlog)

	// Redis 可选：排行榜缓存与跨实例事件推送
	hooks := service.LedgerHooks{Events: wsHub}
	var boardCache service.LeaderboardCache
	var cronCache cron.CacheInvalidator
	if cfg.Redis.Enabled() {
		rdb, err := database.NewRedis(&cfg.Redis)
		if err != nil {
			zlog.Fatal("Failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()

		lbCache := cache.NewLeaderboardCache(rdb, cfg.Ledger.LeaderboardCacheTTL)
		boardCache = lbCache
		cronCache = lbCache
		hooks = service.LedgerHooks{Cache: lbCache, Events: pubsub.NewPublisher(rdb)}

		subscriber := pubsub.NewSubscriber(rdb)
		go func() {
			if err := subscriber.Subscribe(ctx, wsHub.LedgerEventHandler()); err != nil && !errors.Is(err, context.Canceled) {
				zlog.Error("Ledger event subscription stopped", zap.Error(err))
			}
		}()
		zlog.Info("Redis connected")
	}

	// 外部服务
	fcHTTP := httpx.New(cfg.Farcaster.Timeout, httpx.DefaultRetryOptions(), zlog)
	fcClient, err := farcaster.NewClient(fcHTTP, farcaster.Options{
		NeynarAPIKey:    cfg.Farcaster.NeynarAPIKey,
		NeynarBaseURL:   cfg.Farcaster.NeynarBaseURL,
		HubBaseURL:      cfg.Farcaster.HubBaseURL,
		WarpcastBaseURL: cfg.Farcaster.WarpcastBaseURL,
		ComposeURL:      cfg.Farcaster.ComposeURL,
		CacheSize:       cfg.Farcaster.LookupCacheSize,
	}, zlog)
	if err != nil {
		zlog.Fatal("Failed to init farcaster client", zap.Error(err))
	}

	pexelsHTTP := httpx.New(cfg.Pexels.Timeout, httpx.DefaultRetryOptions(), zlog)
	photos := pexels.NewClient(pexelsHTTP, cfg.Pexels.APIKey, cfg.Pexels.BaseURL, zlog)

	var generator service.ContentGenerator
	if cfg.Gemini.APIKey != "" {
		gem, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout, zlog)
		if err != nil {
			zlog.Warn("Failed to init gemini client, content generation disabled", zap.Error(err))
		} else {
			defer gem.Close()
			generator = gem
		}
	} else {
		zlog.Warn("Gemini API key not set, content generation disabled")
	}

	// 初始化 Service
	questService := service.NewQuestService(repos.Quests, repos.Users, hooks, zlog)
	castLimitService := service.NewCastLimitService(repos.CastLimits, clock, hooks, zlog)
	userService := service.NewUserService(repos.Users, fcClient, cfg, zlog)
	draftService := service.NewDraftService(repos.Drafts)
	castService := service.NewCastService(draftService, userService, castLimitService, questService, fcClient, zlog)
	leaderboardService := service.NewLeaderboardService(repos.Quests, repos.Badges, boardCache, cfg.Ledger.StreakWorkers, zlog)
	sbtService := service.NewSbtService(repos.Badges, repos.Users, questService, hooks, zlog)
	rewardService := service.NewRewardService(zlog)
	contentService := service.NewContentService(generator, zlog)
	imageService := service.NewImageService(photos)
	feedbackService := service.NewFeedbackService(repos.Feedback, zlog)

	// 每日 03:00 清理发布计数
	cronService := cron.NewService(castLimitService, cronCache, clock, zlog)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Handler 与 Router
	router := api.NewRouter(&api.Handlers{
		User:        handler.NewUserHandler(userService),
		Quest:       handler.NewQuestHandler(questService),
		Cast:        handler.NewCastHandler(castService, castLimitService),
		Farcaster:   handler.NewFarcasterHandler(fcClient, zlog),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardService),
		Reward:      handler.NewRewardHandler(sbtService, rewardService),
		Draft:       handler.NewDraftHandler(draftService),
		Content:     handler.NewContentHandler(contentService, imageService),
		Feedback:    handler.NewFeedbackHandler(feedbackService),
		WebSocket:   handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret, cfg.CORS.AllowedOrigins, zlog),
	}, cfg, zlog)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	zlog.Info("Received shutdown signal")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server shutdown failed", zap.Error(err))
	}
	zlog.Info("Server stopped")
}
