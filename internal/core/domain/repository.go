package domain

import (
	"context"
)

// UserStateRepository persists the routines, current routine reference and
// completion log of a user as one unit.
type UserStateRepository interface {
	// LoadUserState returns the stored state, or an empty state for a user
	// that has none yet.
	LoadUserState(ctx context.Context, userID string) (*UserState, error)
	// SaveUserState replaces the stored state of the user.
	SaveUserState(ctx context.Context, userID string, state *UserState) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
	// ListIDs is used by background jobs that sweep every account.
	ListIDs(ctx context.Context) ([]string, error)
	UpdateStreak(ctx context.Context, id string, streak Streak) error
}
