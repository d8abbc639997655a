package model

import (
	"time"
)

type Feedback struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Type      string    `gorm:"size:20;not null" json:"type"` // bug, feature, general, compliment
	Message   string    `gorm:"type:text;not null" json:"message"`
	UserAgent string    `gorm:"size:500" json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Feedback) TableName() string {
	return "feedback"
}
