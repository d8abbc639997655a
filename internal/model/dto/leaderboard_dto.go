package dto

import "github.com/shopspring/decimal"

// LeaderboardEntry 排行榜条目，周/月/年积分目前等于总积分
type LeaderboardEntry struct {
	ID            string          `json:"id"`
	WalletAddress string          `json:"walletAddress"`
	Username      *string         `json:"username,omitempty"`
	TotalPoints   decimal.Decimal `json:"totalPoints"`
	Rank          int             `json:"rank"`
	Streak        int             `json:"streak"`
	WeeklyPoints  decimal.Decimal `json:"weeklyPoints"`
	MonthlyPoints decimal.Decimal `json:"monthlyPoints"`
	YearlyPoints  decimal.Decimal `json:"yearlyPoints"`
	HasSbt        bool            `json:"hasSbt"`
}
