package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs3c/castquest_server/internal/model"
)

type BadgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

func (r *BadgeRepository) GetByUser(ctx context.Context, userID string) (*model.SbtBadge, error) {
	var badge model.SbtBadge
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&badge).Error
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *BadgeRepository) Create(ctx context.Context, badge *model.SbtBadge) error {
	return r.db.WithContext(ctx).Create(badge).Error
}

func (r *BadgeRepository) Update(ctx context.Context, badge *model.SbtBadge) error {
	return r.db.WithContext(ctx).Save(badge).Error
}
