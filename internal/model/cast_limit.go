package model

import (
	"time"
)

// MaxDailyCasts 每个账本日最多发布次数
const MaxDailyCasts = 10

type DailyCastLimit struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_user_date" json:"userId"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_user_date" json:"date"` // YYYY-MM-DD（账本日）
	CastCount int       `gorm:"not null;default:0" json:"castCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (DailyCastLimit) TableName() string {
	return "daily_cast_limits"
}
