package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

// fakeStateRepo keeps deep copies so tests observe only what was saved.
type fakeStateRepo struct {
	mu        sync.Mutex
	store     map[string]*domain.UserState
	saves     int
	saveError error
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{store: make(map[string]*domain.UserState)}
}

func (f *fakeStateRepo) LoadUserState(ctx context.Context, userID string) (*domain.UserState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.store[userID]
	if !ok {
		return domain.NewUserState(userID), nil
	}
	return s.Clone(), nil
}

func (f *fakeStateRepo) SaveUserState(ctx context.Context, userID string, state *domain.UserState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveError != nil {
		return f.saveError
	}
	f.saves++
	f.store[userID] = state.Clone()
	return nil
}

func (f *fakeStateRepo) saved(userID string) *domain.UserState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.store[userID]; ok {
		return s.Clone()
	}
	return nil
}

// fakeCatalog offers the exercise names used across the service tests.
type fakeCatalog struct {
	err error
}

func (f *fakeCatalog) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Exercise
	for _, name := range []string{"Squat", "Bench", "Row", "Plank", "Run", "랫 풀 다운"} {
		out = append(out, domain.Exercise{Name: name})
	}
	return out, nil
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepo) UpdateStreak(ctx context.Context, id string, streak domain.Streak) error {
	return m.Called(ctx, id, streak).Error(0)
}

type recordingQueue struct {
	mu    sync.Mutex
	users []string
}

func (q *recordingQueue) Enqueue(userID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.users = append(q.users, userID)
}

func (q *recordingQueue) enqueued() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.users...)
}
