package dto

import (
	"github.com/shopspring/decimal"

	"github.com/qs3c/castquest_server/internal/model"
)

// MintSbtRequest SBT 铸造请求
type MintSbtRequest struct {
	UserID          string `json:"userId" binding:"required"`
	TransactionHash string `json:"transactionHash" binding:"required,max=100"`
}

// MintSbtResponse SBT 铸造响应
type MintSbtResponse struct {
	Success         bool            `json:"success"`
	Badge           *model.SbtBadge `json:"badge"`
	PointsEarned    decimal.Decimal `json:"pointsEarned"`
	TransactionHash string          `json:"transactionHash"`
}

// EmptyBadge 未铸造时返回
type EmptyBadge struct {
	MintCount int    `json:"mintCount"`
	TotalPaid string `json:"totalPaid"`
}

// ClaimDegenRequest 兑换 DEGEN 请求
type ClaimDegenRequest struct {
	UserID string           `json:"userId" binding:"required"`
	Points *decimal.Decimal `json:"points" binding:"required"`
}

// ClaimDegenResponse 兑换 DEGEN 响应
type ClaimDegenResponse struct {
	Success         bool   `json:"success"`
	DegenAmount     int64  `json:"degenAmount"`
	Message         string `json:"message"`
	ContractAddress string `json:"contractAddress"`
	ChainID         int    `json:"chainId"`
}
