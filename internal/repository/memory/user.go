package memory

import (
	"context"

	"github.com/qs3c/castquest_server/internal/model"
	"github.com/qs3c/castquest_server/internal/repository"
)

type userRow = model.User

type UserRepository struct {
	s *store
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, row := range r.s.users {
		if row.WalletAddress == user.WalletAddress {
			return errDuplicate("users.wallet_address")
		}
	}
	if user.ID == "" {
		user.ID = model.NewID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (r *UserRepository) GetByWallet(_ context.Context, walletAddress string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, row := range r.s.users {
		if row.WalletAddress == walletAddress {
			user := row
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}
