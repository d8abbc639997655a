package dto

import "github.com/qs3c/castquest_server/internal/pkg/farcaster"

// CastLimitStatus 当前账本日的发布次数
type CastLimitStatus struct {
	Date          string `json:"date"`
	Count         int    `json:"count"`
	Remaining     int    `json:"remaining"`
	MaxDailyCasts int    `json:"maxDailyCasts"`
	CanCast       bool   `json:"canCast"`
	LimitReached  bool   `json:"limitReached"`
	ResetIn       int    `json:"resetIn"` // 秒
}

// CastIncrementResult 计数加一后的结果
type CastIncrementResult struct {
	Count   int  `json:"count"`
	CanCast bool `json:"canCast"`
	ResetIn int  `json:"resetIn"`
}

// PublishCastRequest 发布草稿请求
type PublishCastRequest struct {
	DraftID  string `json:"draftId" binding:"required"`
	ImageURL string `json:"imageUrl,omitempty" binding:"omitempty,max=1000"`
}

// DailyCastInfo 发布后的每日计数
type DailyCastInfo struct {
	Count     int  `json:"count"`
	Remaining int  `json:"remaining"`
	CanCast   bool `json:"canCast"`
	ResetIn   int  `json:"resetIn"`
}

// PublishCastResponse 发布准备结果
type PublishCastResponse struct {
	*farcaster.CastPreparation
	Message       string        `json:"message"`
	DailyCastInfo DailyCastInfo `json:"dailyCastInfo"`
}
