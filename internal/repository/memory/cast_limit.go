package memory

import (
	"context"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/repository"
)

type castRow = model.DailyCastLimit

type CastLimitRepository struct {
	s *store
}

func (r *CastLimitRepository) Get(_ context.Context, userID, date string) (*model.DailyCastLimit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.castLimits[key(userID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (r *CastLimitRepository) Increment(_ context.Context, userID, date string) (*model.DailyCastLimit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := key(userID, date)
	now := r.s.now()
	row, ok := r.s.castLimits[k]
	if !ok {
		row = model.DailyCastLimit{
			ID:        model.NewID(),
			UserID:    userID,
			Date:      date,
			CreatedAt: now,
		}
	}
	row.CastCount++
	row.UpdatedAt = now
	r.s.castLimits[k] = row
	return &row, nil
}

func (r *CastLimitRepository) DeleteBefore(_ context.Context, date string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for k, row := range r.s.castLimits {
		if row.Date < date {
			delete(r.s.castLimits, k)
			deleted++
		}
	}
	return deleted, nil
}
