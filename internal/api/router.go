package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/config"
	"github.com/qs3c/castquest_server/internal/api/handler"
	"github.com/qs3c/castquest_server/internal/api/middleware"
)

// Handlers 路由使用的全部 handler
type Handlers struct {
	User        *handler.UserHandler
	Quest       *handler.QuestHandler
	Cast        *handler.CastHandler
	Farcaster   *handler.FarcasterHandler
	Leaderboard *handler.LeaderboardHandler
	Reward      *handler.RewardHandler
	Draft       *handler.DraftHandler
	Content     *handler.ContentHandler
	Feedback    *handler.FeedbackHandler
	WebSocket   *handler.WebSocketHandler
}

type Router struct {
	handlers *Handlers
	cfg      *config.Config
	logger   *zap.Logger
}

func NewRouter(handlers *Handlers, cfg *config.Config, logger *zap.Logger) *Router {
	return &Router{
		handlers: handlers,
		cfg:      cfg,
		logger:   logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := r.handlers

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(r.logger.Named("http")))
	engine.Use(middleware.CORS(r.cfg.CORS))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
	{
		// WebSocket
		if h.WebSocket != nil {
			api.GET("/ws", h.WebSocket.Handle)
		}

		// 用户
		users := api.Group("/users")
		{
			users.POST("", h.User.Connect)
			users.GET("/:walletAddress", h.User.GetByWallet)
			users.PATCH("/:id", middleware.RequireSameUser("id"), h.User.Update)
		}

		// 任务
		quests := api.Group("/quests")
		{
			quests.POST("/complete", h.Quest.Complete)
			quests.GET("/user/:userId", h.Quest.Status)
		}

		// 发布
		api.GET("/cast-limits/:userId", h.Cast.LimitStatus)
		farcaster := api.Group("/farcaster")
		{
			farcaster.POST("/cast", h.Cast.Publish)
			farcaster.GET("/user-by-wallet/:walletAddress", h.Farcaster.UserByWallet)
			farcaster.GET("/profile/:fid", h.Farcaster.Profile)
		}
		api.POST("/webhook", h.Farcaster.Webhook)

		api.GET("/leaderboard", h.Leaderboard.Get)

		// SBT 与奖励
		sbt := api.Group("/sbt")
		{
			sbt.POST("/mint", h.Reward.MintSbt)
			sbt.GET("/user/:userId", h.Reward.GetBadge)
		}
		api.POST("/rewards/claim-degen", h.Reward.ClaimDegen)

		// 草稿
		drafts := api.Group("/drafts")
		{
			drafts.POST("", h.Draft.Create)
			drafts.GET("/user/:userId", middleware.RequireSameUser("userId"), h.Draft.ListByUser)
			drafts.GET("/:id", h.Draft.Get)
			drafts.PATCH("/:id", h.Draft.Update)
			drafts.DELETE("/:id", h.Draft.Delete)
		}

		// 内容与图片
		api.POST("/content/generate", h.Content.Generate)
		api.GET("/generate", h.Content.GenerateFromPrompt)
		images := api.Group("/images")
		{
			images.POST("/suggest-search", h.Content.SuggestSearch)
			images.GET("/search", h.Content.SearchImages)
			images.GET("/featured", h.Content.FeaturedImages)
		}

		api.POST("/feedback", h.Feedback.Submit)
	}

	return engine
}
