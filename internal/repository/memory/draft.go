package memory

import (
	"context"
	"sort"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/repository"
)

type draftRow struct {
	model.ContentDraft
	seq uint64
}

type DraftRepository struct {
	s *store
}

func (r *DraftRepository) Create(_ context.Context, draft *model.ContentDraft) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if draft.ID == "" {
		draft.ID = model.NewID()
	}
	now := r.s.now()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	r.s.drafts[draft.ID] = draftRow{ContentDraft: *draft, seq: r.s.nextSeq()}
	return nil
}

func (r *DraftRepository) GetByID(_ context.Context, id string) (*model.ContentDraft, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.drafts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	draft := row.ContentDraft
	return &draft, nil
}

func (r *DraftRepository) ListByUser(_ context.Context, userID string) ([]model.ContentDraft, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]draftRow, 0)
	for _, row := range r.s.drafts {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	// 最新的在前
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	drafts := make([]model.ContentDraft, 0, len(rows))
	for _, row := range rows {
		drafts = append(drafts, row.ContentDraft)
	}
	return drafts, nil
}

func (r *DraftRepository) Update(_ context.Context, draft *model.ContentDraft) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.drafts[draft.ID]
	if !ok {
		return repository.ErrNotFound
	}
	draft.UpdatedAt = r.s.now()
	row.ContentDraft = *draft
	r.s.drafts[draft.ID] = row
	return nil
}

func (r *DraftRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drafts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.drafts, id)
	return nil
}
