package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type BadgeAttribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

type BadgeMetadata struct {
	ImageURL    string           `json:"imageUrl"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Attributes  []BadgeAttribute `json:"attributes"`
}

type SbtBadge struct {
	ID            string                             `gorm:"primaryKey;size:36" json:"id"`
	UserID        string                             `gorm:"size:36;not null;uniqueIndex" json:"userId"`
	MintCount     int                                `gorm:"not null;default:0" json:"mintCount"`
	TotalPaid     decimal.Decimal                    `gorm:"type:decimal(18,6);not null;default:0" json:"totalPaid"`
	BadgeMetadata *datatypes.JSONType[BadgeMetadata] `json:"badgeMetadata,omitempty"`
	LastMintedAt  *time.Time                         `json:"lastMintedAt"`
	CreatedAt     time.Time                          `json:"createdAt"`
	UpdatedAt     time.Time                          `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (SbtBadge) TableName() string {
	return "sbt_badges"
}
