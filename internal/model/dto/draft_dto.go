package dto

import "github.com/qs3c/castquest_server/internal/model"

// CreateDraftRequest 创建草稿请求
type CreateDraftRequest struct {
	UserID           string               `json:"userId" binding:"required"`
	Topic            string               `json:"topic" binding:"required,max=2000"`
	ContentType      string               `json:"contentType" binding:"required,max=50"`
	Tone             string               `json:"tone" binding:"required,max=50"`
	GeneratedContent *string              `json:"generatedContent,omitempty"`
	SelectedImage    *model.SelectedImage `json:"selectedImage,omitempty"`
}

// UpdateDraftRequest 更新草稿请求
type UpdateDraftRequest struct {
	Topic             *string              `json:"topic,omitempty" binding:"omitempty,max=2000"`
	ContentType       *string              `json:"contentType,omitempty" binding:"omitempty,max=50"`
	Tone              *string              `json:"tone,omitempty" binding:"omitempty,max=50"`
	GeneratedContent  *string              `json:"generatedContent,omitempty"`
	SelectedImage     *model.SelectedImage `json:"selectedImage,omitempty"`
	IsPublished       *bool                `json:"isPublished,omitempty"`
	FarcasterCastHash *string              `json:"farcasterCastHash,omitempty" binding:"omitempty,max=100"`
}
