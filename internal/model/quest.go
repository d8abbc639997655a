package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 任务类型
const (
	QuestDailyCheckin    = "daily_checkin"
	QuestDailyGM         = "daily_gm"
	QuestDailyCast       = "daily_cast"
	QuestShareApp        = "share_app"
	QuestNFTHolding      = "nft_holding"
	QuestFollowFarcaster = "follow_farcaster"
	QuestFollowX         = "follow_x"
	QuestAddMiniApp      = "add_miniapp"
	QuestMintSBT         = "mint_sbt"
)

// QuestCooldown 可重复任务的冷却时间（滚动 24 小时，不按自然日）
const QuestCooldown = 24 * time.Hour

// QuestPoints 每种任务的积分
var QuestPoints = map[string]decimal.Decimal{
	QuestDailyCheckin:    decimal.NewFromInt(1),
	QuestDailyGM:         decimal.RequireFromString("0.25"),
	QuestDailyCast:       decimal.NewFromInt(1),
	QuestShareApp:        decimal.NewFromInt(1),
	QuestNFTHolding:      decimal.NewFromInt(10),
	QuestFollowFarcaster: decimal.NewFromInt(1),
	QuestFollowX:         decimal.NewFromInt(1),
	QuestAddMiniApp:      decimal.NewFromInt(1),
	QuestMintSBT:         decimal.NewFromInt(50),
}

// oneTimeQuests 只能完成一次的奖励任务
var oneTimeQuests = map[string]struct{}{
	QuestFollowFarcaster: {},
	QuestFollowX:         {},
	QuestAddMiniApp:      {},
}

// DailyStreakQuests 参与连续天数计算的任务
var DailyStreakQuests = []string{QuestDailyCheckin, QuestDailyGM}

// DailyQuests 状态接口里按冷却展示的任务
var DailyQuests = []string{QuestDailyCheckin, QuestDailyGM, QuestDailyCast, QuestShareApp}

// BonusQuests 状态接口里展示的一次性任务
var BonusQuests = []string{QuestFollowFarcaster, QuestFollowX, QuestAddMiniApp}

func IsOneTimeQuest(questType string) bool {
	_, ok := oneTimeQuests[questType]
	return ok
}

func IsKnownQuest(questType string) bool {
	_, ok := QuestPoints[questType]
	return ok
}

type UserQuest struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	UserID          string          `gorm:"size:36;not null;uniqueIndex:idx_user_quest" json:"userId"`
	QuestType       string          `gorm:"size:50;not null;uniqueIndex:idx_user_quest" json:"questType"`
	LastCompletedAt *time.Time      `json:"lastCompletedAt"`
	TotalPoints     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"totalPoints"`
	CompletionCount int             `gorm:"not null;default:0" json:"completionCount"`
	IsOneTime       bool            `gorm:"not null;default:false" json:"isOneTime"`
	IsCompleted     bool            `gorm:"not null;default:false" json:"isCompleted"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserQuest) TableName() string {
	return "user_quests"
}
