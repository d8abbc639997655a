package model

import (
	"time"

	"gorm.io/datatypes"
)

type SelectedImage struct {
	URL          string `json:"url"`
	Alt          string `json:"alt"`
	Photographer string `json:"photographer"`
	Source       string `json:"source"`
}

type ContentDraft struct {
	ID                string                             `gorm:"primaryKey;size:36" json:"id"`
	UserID            string                             `gorm:"size:36;not null;index" json:"userId"`
	Topic             string                             `gorm:"type:text;not null" json:"topic"`
	ContentType       string                             `gorm:"size:50;not null" json:"contentType"`
	Tone              string                             `gorm:"size:50;not null" json:"tone"`
	GeneratedContent  *string                            `gorm:"type:text" json:"generatedContent"`
	SelectedImage     *datatypes.JSONType[SelectedImage] `json:"selectedImage"`
	IsPublished       bool                               `gorm:"not null;default:false" json:"isPublished"`
	FarcasterCastHash *string                            `gorm:"size:100" json:"farcasterCastHash"`
	CreatedAt         time.Time                          `json:"createdAt"`
	UpdatedAt         time.Time                          `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (ContentDraft) TableName() string {
	return "content_drafts"
}
