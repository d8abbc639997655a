package dto

// CreateFeedbackRequest 用户反馈
type CreateFeedbackRequest struct {
	Type    string `json:"type" binding:"required,oneof=bug feature general compliment"`
	Message string `json:"message" binding:"required,max=5000"`
}

type CreateFeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}
