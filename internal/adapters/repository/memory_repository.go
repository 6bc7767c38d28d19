package repository

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

var (
	_ domain.UserStateRepository = (*InMemoryStateRepository)(nil)
	_ domain.UserRepository      = (*InMemoryUserRepository)(nil)
)

// InMemoryStateRepository copies on every load and save so callers never
// share memory with the store.
type InMemoryStateRepository struct {
	store map[string]*domain.UserState

	mu sync.RWMutex
}

func NewInMemoryStateRepository() *InMemoryStateRepository {
	return &InMemoryStateRepository{
		store: make(map[string]*domain.UserState),
	}
}

func (r *InMemoryStateRepository) LoadUserState(ctx context.Context, userID string) (*domain.UserState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.store[userID]
	if !ok {
		return domain.NewUserState(userID), nil
	}
	return state.Clone(), nil
}

func (r *InMemoryStateRepository) SaveUserState(ctx context.Context, userID string, state *domain.UserState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[userID] = state.Clone()
	return nil
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) UpdateStreak(ctx context.Context, id string, streak domain.Streak) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.store[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.UpdateStreak(streak)
	return nil
}

func (r *InMemoryUserRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, strings.Compare)
	return ids, nil
}
