package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/pkg/farcaster"
	"github.com/qs3c/castquest_server/internal/pkg/response"
)

// FarcasterDirectory Farcaster 用户查询
type FarcasterDirectory interface {
	LookupByWallet(ctx context.Context, walletAddress string) (*farcaster.Profile, error)
	HubProfile(ctx context.Context, fid string) (map[string]interface{}, error)
}

type FarcasterHandler struct {
	directory FarcasterDirectory
	logger    *zap.Logger
}

func NewFarcasterHandler(directory FarcasterDirectory, logger *zap.Logger) *FarcasterHandler {
	return &FarcasterHandler{
		directory: directory,
		logger:    logger.Named("farcaster"),
	}
}

// UserByWallet 钱包对应的 Farcaster 用户
// GET /api/farcaster/user-by-wallet/:walletAddress
func (h *FarcasterHandler) UserByWallet(c *gin.Context) {
	profile, err := h.directory.LookupByWallet(c.Request.Context(), c.Param("walletAddress"))
	if err != nil {
		response.ServerError(c, err)
		return
	}
	if profile == nil {
		response.NotFoundError(c, "Farcaster user not found")
		return
	}

	response.Success(c, profile)
}

// Profile Hub 上的用户资料
// GET /api/farcaster/profile/:fid
func (h *FarcasterHandler) Profile(c *gin.Context) {
	profile, err := h.directory.HubProfile(c.Request.Context(), c.Param("fid"))
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.Success(c, profile)
}

// Webhook 小程序事件回调，只记录日志
// POST /api/webhook
func (h *FarcasterHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 64<<10))
	if err != nil {
		response.ParamError(c, "无法读取请求体")
		return
	}

	h.logger.Info("Webhook received", zap.ByteString("body", body))
	response.Success(c, gin.H{"success": true})
}
