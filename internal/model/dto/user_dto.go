package dto

import "github.com/qs3c/castquest_server/internal/model"

// ConnectWalletRequest 连接钱包请求，已存在的钱包直接返回
type ConnectWalletRequest struct {
	WalletAddress        string  `json:"walletAddress" binding:"required,max=100"`
	FarcasterFid         *string `json:"farcasterFid,omitempty" binding:"omitempty,max=50"`
	FarcasterUsername    *string `json:"farcasterUsername,omitempty" binding:"omitempty,max=100"`
	FarcasterDisplayName *string `json:"farcasterDisplayName,omitempty" binding:"omitempty,max=200"`
	FarcasterAvatar      *string `json:"farcasterAvatar,omitempty" binding:"omitempty,max=500"`
	BaseUsername         *string `json:"baseUsername,omitempty" binding:"omitempty,max=100"`
	EnsUsername          *string `json:"ensUsername,omitempty" binding:"omitempty,max=100"`
}

// ConnectWalletResponse 用户信息加会话令牌
type ConnectWalletResponse struct {
	*model.User
	Token string `json:"token"`
}

// UpdateUserRequest 更新用户资料，只更新传入的字段
type UpdateUserRequest struct {
	FarcasterFid         *string `json:"farcasterFid,omitempty" binding:"omitempty,max=50"`
	FarcasterUsername    *string `json:"farcasterUsername,omitempty" binding:"omitempty,max=100"`
	FarcasterDisplayName *string `json:"farcasterDisplayName,omitempty" binding:"omitempty,max=200"`
	FarcasterAvatar      *string `json:"farcasterAvatar,omitempty" binding:"omitempty,max=500"`
	FarcasterBio         *string `json:"farcasterBio,omitempty" binding:"omitempty,max=2000"`
	BaseUsername         *string `json:"baseUsername,omitempty" binding:"omitempty,max=100"`
	EnsUsername          *string `json:"ensUsername,omitempty" binding:"omitempty,max=100"`
	FollowerCount        *int    `json:"followerCount,omitempty" binding:"omitempty,min=0"`
	FollowingCount       *int    `json:"followingCount,omitempty" binding:"omitempty,min=0"`
	XURL                 *string `json:"xUrl,omitempty" binding:"omitempty,max=500"`
	GithubURL            *string `json:"githubUrl,omitempty" binding:"omitempty,max=500"`
	FarcasterURL         *string `json:"farcasterUrl,omitempty" binding:"omitempty,max=500"`
}
