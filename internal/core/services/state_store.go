package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

// StateStore serializes load-mutate-save cycles per user. Routine and record
// services share one store so both sides of a user's state sit behind the
// same mutex.
type StateStore struct {
	repo  domain.UserStateRepository
	locks *userLocks
}

// updateLoader is implemented by repositories whose LoadUserState may serve
// a cached copy.
type updateLoader interface {
	LoadUserStateForUpdate(ctx context.Context, userID string) (*domain.UserState, error)
}

func NewStateStore(repo domain.UserStateRepository) *StateStore {
	return &StateStore{
		repo:  repo,
		locks: newUserLocks(),
	}
}

func (s *StateStore) Load(ctx context.Context, userID string) (*domain.UserState, error) {
	return s.repo.LoadUserState(ctx, userID)
}

// Mutate applies fn to a state freshly loaded from the backing store and
// saves it when fn succeeds. Save errors are returned unwrapped and never
// retried.
func (s *StateStore) Mutate(ctx context.Context, userID string, fn func(*domain.UserState) error) (*domain.UserState, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	state, err := s.loadForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := fn(state); err != nil {
		return nil, err
	}

	if err := s.repo.SaveUserState(ctx, userID, state); err != nil {
		return nil, err
	}

	return state, nil
}

func (s *StateStore) loadForUpdate(ctx context.Context, userID string) (*domain.UserState, error) {
	if u, ok := s.repo.(updateLoader); ok {
		return u.LoadUserStateForUpdate(ctx, userID)
	}
	return s.repo.LoadUserState(ctx, userID)
}
