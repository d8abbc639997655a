package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/castquest_server/internal/model"
)

type CastLimitRepository struct {
	db *gorm.DB
}

func NewCastLimitRepository(db *gorm.DB) *CastLimitRepository {
	return &CastLimitRepository{db: db}
}

func (r *CastLimitRepository) Get(ctx context.Context, userID, date string) (*model.DailyCastLimit, error) {
	var limit model.DailyCastLimit
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&limit).Error
	if err != nil {
		return nil, err
	}
	return &limit, nil
}

// Increment 单条 upsert：不存在时插入 1，存在时加一，并发的首次发布不会撞唯一索引
func (r *CastLimitRepository) Increment(ctx context.Context, userID, date string) (*model.DailyCastLimit, error) {
	limit := &model.DailyCastLimit{
		UserID:    userID,
		Date:      date,
		CastCount: 1,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"cast_count": gorm.Expr("daily_cast_limits.cast_count + 1"),
				"updated_at": time.Now(),
			}),
		}).
		Create(limit).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, userID, date)
}

// DeleteBefore 删除早于指定账本日的计数
func (r *CastLimitRepository) DeleteBefore(ctx context.Context, date string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("date < ?", date).
		Delete(&model.DailyCastLimit{})
	return result.RowsAffected, result.Error
}
