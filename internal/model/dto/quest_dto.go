package dto

import (
	"github.com/shopspring/decimal"

	"github.com/qs3c/castquest_server/internal/model"
)

// CompleteQuestRequest 完成任务请求
type CompleteQuestRequest struct {
	UserID    string `json:"userId" binding:"required"`
	QuestType string `json:"questType" binding:"required"`
}

// CompleteQuestResponse 完成任务响应
type CompleteQuestResponse struct {
	Success      bool             `json:"success"`
	Quest        *model.UserQuest `json:"quest"`
	PointsEarned decimal.Decimal  `json:"pointsEarned"`
}

// QuestState 每日任务状态，未完成过时只有 canComplete 与 timeUntilNext
type QuestState struct {
	*model.UserQuest
	CanComplete   bool  `json:"canComplete"`
	TimeUntilNext int64 `json:"timeUntilNext"` // 毫秒
}

// BonusQuestState 一次性任务状态
type BonusQuestState struct {
	*model.UserQuest
	CanComplete bool `json:"canComplete"`
	IsCompleted bool `json:"isCompleted"`
}

// QuestStatusResponse 用户任务总览
type QuestStatusResponse struct {
	TotalPoints    decimal.Decimal            `json:"totalPoints"`
	CurrentStreak  int                        `json:"currentStreak"`
	DailyCastCount int                        `json:"dailyCastCount"`
	Quests         map[string]QuestState      `json:"quests"`
	BonusQuests    map[string]BonusQuestState `json:"bonusQuests"`
}
