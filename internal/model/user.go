package model

import (
	"time"
)

type User struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	WalletAddress        string    `gorm:"size:100;uniqueIndex;not null" json:"walletAddress"`
	FarcasterFid         *string   `gorm:"size:50" json:"farcasterFid"`
	FarcasterUsername    *string   `gorm:"size:100" json:"farcasterUsername"`
	FarcasterDisplayName *string   `gorm:"size:200" json:"farcasterDisplayName"`
	FarcasterAvatar      *string   `gorm:"size:500" json:"farcasterAvatar"`
	FarcasterBio         *string   `gorm:"type:text" json:"farcasterBio"`
	BaseUsername         *string   `gorm:"size:100" json:"baseUsername"`
	EnsUsername          *string   `gorm:"size:100" json:"ensUsername"`
	FollowerCount        int       `gorm:"default:0" json:"followerCount"`
	FollowingCount       int       `gorm:"default:0" json:"followingCount"`
	XURL                 *string   `gorm:"column:x_url;size:500" json:"xUrl"`
	GithubURL            *string   `gorm:"column:github_url;size:500" json:"githubUrl"`
	FarcasterURL         *string   `gorm:"column:farcaster_url;size:500" json:"farcasterUrl"`
	NeynarScore          *int      `json:"neynarScore"`
	CreatedAt            time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
