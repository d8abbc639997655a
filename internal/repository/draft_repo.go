package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs3c/castquest_server/internal/model"
)

type DraftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) Create(ctx context.Context, draft *model.ContentDraft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *DraftRepository) GetByID(ctx context.Context, id string) (*model.ContentDraft, error) {
	var draft model.ContentDraft
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *DraftRepository) ListByUser(ctx context.Context, userID string) ([]model.ContentDraft, error) {
	var drafts []model.ContentDraft
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&drafts).Error
	return drafts, err
}

func (r *DraftRepository) Update(ctx context.Context, draft *model.ContentDraft) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

func (r *DraftRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContentDraft{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
