package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/repository"
)

type questRow struct {
	model.UserQuest
	seq uint64
}

type QuestRepository struct {
	s *store
}

func (r *QuestRepository) Get(_ context.Context, userID, questType string) (*model.UserQuest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.quests[key(userID, questType)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	quest := row.UserQuest
	return &quest, nil
}

func (r *QuestRepository) ListByUser(_ context.Context, userID string) ([]model.UserQuest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]questRow, 0)
	for _, row := range r.s.quests {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	quests := make([]model.UserQuest, 0, len(rows))
	for _, row := range rows {
		quests = append(quests, row.UserQuest)
	}
	return quests, nil
}

func (r *QuestRepository) Create(_ context.Context, quest *model.UserQuest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := key(quest.UserID, quest.QuestType)
	if _, ok := r.s.quests[k]; ok {
		return errDuplicate("user_quests.idx_user_quest")
	}
	if quest.ID == "" {
		quest.ID = model.NewID()
	}
	now := r.s.now()
	quest.CreatedAt = now
	quest.UpdatedAt = now
	r.s.quests[k] = questRow{UserQuest: *quest, seq: r.s.nextSeq()}
	return nil
}

func (r *QuestRepository) Update(_ context.Context, quest *model.UserQuest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := key(quest.UserID, quest.QuestType)
	row, ok := r.s.quests[k]
	if !ok {
		return repository.ErrNotFound
	}
	quest.UpdatedAt = r.s.now()
	row.UserQuest = *quest
	r.s.quests[k] = row
	return nil
}

func (r *QuestRepository) MarkCompleted(_ context.Context, userID, questType string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := key(userID, questType)
	if row, ok := r.s.quests[k]; ok {
		row.IsCompleted = true
		row.UpdatedAt = r.s.now()
		r.s.quests[k] = row
	}
	return nil
}

func (r *QuestRepository) SumPoints(_ context.Context, userID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := decimal.Zero
	for _, row := range r.s.quests {
		if row.UserID == userID {
			total = total.Add(row.TotalPoints)
		}
	}
	return total, nil
}

func (r *QuestRepository) LeaderboardTotals(_ context.Context) ([]repository.UserPoints, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type agg struct {
		total    decimal.Decimal
		firstSeq uint64
	}
	byUser := make(map[string]*agg)
	for _, row := range r.s.quests {
		a, ok := byUser[row.UserID]
		if !ok {
			a = &agg{total: decimal.Zero, firstSeq: row.seq}
			byUser[row.UserID] = a
		}
		a.total = a.total.Add(row.TotalPoints)
		if row.seq < a.firstSeq {
			a.firstSeq = row.seq
		}
	}

	type entry struct {
		points   repository.UserPoints
		firstSeq uint64
	}
	entries := make([]entry, 0, len(byUser))
	for userID, a := range byUser {
		user, ok := r.s.users[userID]
		if !ok || !a.total.IsPositive() {
			continue
		}
		entries = append(entries, entry{
			points: repository.UserPoints{
				UserID:            userID,
				WalletAddress:     user.WalletAddress,
				FarcasterUsername: user.FarcasterUsername,
				TotalPoints:       a.total,
			},
			firstSeq: a.firstSeq,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].firstSeq < entries[j].firstSeq })

	result := make([]repository.UserPoints, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.points)
	}
	return result, nil
}
