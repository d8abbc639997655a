package dto

import "github.com/qs3c/castquest_server/internal/pkg/pexels"

// GenerateContentRequest 生成内容请求
type GenerateContentRequest struct {
	Topic       string `json:"topic" binding:"required,max=500"`
	ContentType string `json:"contentType" binding:"required,max=50"`
	Tone        string `json:"tone" binding:"required,max=50"`
}

type GenerateContentResponse struct {
	Content string `json:"content"`
}

// SuggestSearchRequest 图片搜索词请求
type SuggestSearchRequest struct {
	Content string `json:"content" binding:"required"`
}

type SuggestSearchResponse struct {
	SearchTerm string `json:"searchTerm"`
}

type PhotosResponse struct {
	Photos []pexels.Photo `json:"photos"`
}

// PromptContentRequest GET /api/generate 查询参数
type PromptContentRequest struct {
	Prompt string `form:"prompt" binding:"required,max=4000"`
	Lang   string `form:"lang" binding:"omitempty"`
}

// PromptContentResponse 自由提示生成结果，text/content/result/message 为同一段文本，兼容旧客户端
type PromptContentResponse struct {
	OK       bool   `json:"ok"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Lang     string `json:"lang"`
	Text     string `json:"text"`
	Content  string `json:"content"`
	Result   string `json:"result"`
	Message  string `json:"message"`
}
