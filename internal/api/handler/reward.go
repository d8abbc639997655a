package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/castquest_server/internal/api/middleware"
	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/service"
)

type RewardHandler struct {
	sbtService    *service.SbtService
	rewardService *service.RewardService
}

func NewRewardHandler(sbtService *service.SbtService, rewardService *service.RewardService) *RewardHandler {
	return &RewardHandler{
		sbtService:    sbtService,
		rewardService: rewardService,
	}
}

// MintSbt 记录 SBT 铸造
// POST /api/sbt/mint
func (h *RewardHandler) MintSbt(c *gin.Context) {
	var req dto.MintSbtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	if !middleware.SameUser(c, req.UserID) {
		return
	}

	resp, err := h.sbtService.Mint(c.Request.Context(), req.UserID, req.TransactionHash)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetBadge 用户徽章
// GET /api/sbt/user/:userId
func (h *RewardHandler) GetBadge(c *gin.Context) {
	badge, err := h.sbtService.GetBadge(c.Request.Context(), c.Param("userId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if badge == nil {
		response.Success(c, dto.EmptyBadge{MintCount: 0, TotalPaid: "0"})
		return
	}

	response.Success(c, badge)
}

// ClaimDegen 积分兑换 DEGEN
// POST /api/rewards/claim-degen
func (h *RewardHandler) ClaimDegen(c *gin.Context) {
	var req dto.ClaimDegenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	if !middleware.SameUser(c, req.UserID) {
		return
	}

	resp, err := h.rewardService.ClaimDegen(req.UserID, *req.Points)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, resp)
}
