package memory

import (
	"context"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/repository"
)

type badgeRow = model.SbtBadge

type BadgeRepository struct {
	s *store
}

func (r *BadgeRepository) GetByUser(_ context.Context, userID string) (*model.SbtBadge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.badges[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (r *BadgeRepository) Create(_ context.Context, badge *model.SbtBadge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.badges[badge.UserID]; ok {
		return errDuplicate("sbt_badges.user_id")
	}
	if badge.ID == "" {
		badge.ID = model.NewID()
	}
	now := r.s.now()
	badge.CreatedAt = now
	badge.UpdatedAt = now
	r.s.badges[badge.UserID] = *badge
	return nil
}

func (r *BadgeRepository) Update(_ context.Context, badge *model.SbtBadge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.badges[badge.UserID]; !ok {
		return repository.ErrNotFound
	}
	badge.UpdatedAt = r.s.now()
	r.s.badges[badge.UserID] = *badge
	return nil
}
