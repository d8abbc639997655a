package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/castquest_server/internal/model"
)

type QuestRepository struct {
	db *gorm.DB
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{db: db}
}

func (r *QuestRepository) Get(ctx context.Context, userID, questType string) (*model.UserQuest, error) {
	var quest model.UserQuest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quest_type = ?", userID, questType).
		First(&quest).Error
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

func (r *QuestRepository) ListByUser(ctx context.Context, userID string) ([]model.UserQuest, error) {
	var quests []model.UserQuest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&quests).Error
	return quests, err
}

func (r *QuestRepository) Create(ctx context.Context, quest *model.UserQuest) error {
	return r.db.WithContext(ctx).Create(quest).Error
}

func (r *QuestRepository) Update(ctx context.Context, quest *model.UserQuest) error {
	return r.db.WithContext(ctx).Save(quest).Error
}

func (r *QuestRepository) MarkCompleted(ctx context.Context, userID, questType string) error {
	return r.db.WithContext(ctx).Model(&model.UserQuest{}).
		Where("user_id = ? AND quest_type = ?", userID, questType).
		Update("is_completed", true).Error
}

func (r *QuestRepository) SumPoints(ctx context.Context, userID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&model.UserQuest{}).
		Select("COALESCE(SUM(total_points), 0)").
		Where("user_id = ?", userID).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *QuestRepository) LeaderboardTotals(ctx context.Context) ([]UserPoints, error) {
	var rows []UserPoints
	err := r.db.WithContext(ctx).Table("user_quests AS q").
		Select("u.id AS user_id, u.wallet_address, u.farcaster_username, SUM(q.total_points) AS total_points").
		Joins("JOIN users u ON u.id = q.user_id").
		Group("u.id, u.wallet_address, u.farcaster_username").
		Having("SUM(q.total_points) > 0").
		Order("MIN(q.created_at) ASC, u.id ASC").
		Scan(&rows).Error
	return rows, err
}
