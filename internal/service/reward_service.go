package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/model/dto"
)

const (
	DegenContractAddress = "0x4ed4E862860beD51a9570b96d89aF5E1B0Efefed"
	BaseChainID          = 8453
)

var (
	// DegenClaimMinimum 兑换所需最低积分
	DegenClaimMinimum = decimal.NewFromInt(250)
	// DegenPerPoint 每积分兑换的 DEGEN
	DegenPerPoint = decimal.RequireFromString("0.1")

	ErrInvalidPoints       = errors.New("积分必须大于 0")
	ErrBelowClaimThreshold = errors.New("至少需要 250 积分才能兑换 DEGEN")
)

type RewardService struct {
	logger *zap.Logger
}

func NewRewardService(logger *zap.Logger) *RewardService {
	return &RewardService{logger: logger.Named("reward")}
}

// ClaimDegen 计算可兑换的 DEGEN 数量，不扣减积分，链上转账由合约完成
func (s *RewardService) ClaimDegen(userID string, points decimal.Decimal) (*dto.ClaimDegenResponse, error) {
	if !points.IsPositive() {
		return nil, ErrInvalidPoints
	}
	if points.LessThan(DegenClaimMinimum) {
		return nil, ErrBelowClaimThreshold
	}

	amount := points.Mul(DegenPerPoint).Floor().IntPart()

	s.logger.Info("DEGEN claim",
		zap.String("userID", userID),
		zap.String("points", points.String()),
		zap.Int64("amount", amount))

	return &dto.ClaimDegenResponse{
		Success:         true,
		DegenAmount:     amount,
		Message:         fmt.Sprintf("Successfully claimed %d DEGEN tokens!", amount),
		ContractAddress: DegenContractAddress,
		ChainID:         BaseChainID,
	}, nil
}
