package memory

import (
	"context"

	"github.com/qs3c/castquest_server/internal/model"
)

type feedbackRow = model.Feedback

type FeedbackRepository struct {
	s *store
}

func (r *FeedbackRepository) Create(_ context.Context, feedback *model.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if feedback.ID == "" {
		feedback.ID = model.NewID()
	}
	feedback.CreatedAt = r.s.now()
	r.s.feedback = append(r.s.feedback, *feedback)
	return nil
}

func (r *FeedbackRepository) List(_ context.Context, limit int) ([]model.Feedback, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]model.Feedback, 0, len(r.s.feedback))
	for i := len(r.s.feedback) - 1; i >= 0; i-- {
		items = append(items, r.s.feedback[i])
		if limit > 0 && len(items) == limit {
			break
		}
	}
	return items, nil
}
