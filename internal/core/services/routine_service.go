package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

type RoutineService struct {
	store   *StateStore
	catalog domain.ExerciseCatalog
}

// NewRoutineService builds the service. Exercise items must name an entry
// of catalog.
func NewRoutineService(store *StateStore, catalog domain.ExerciseCatalog) *RoutineService {
	return &RoutineService{
		store:   store,
		catalog: catalog,
	}
}

type CreateRoutineInput struct {
	UserID    string
	RoutineID string
	Title     string
	// WeekRoutine is optional; nil creates an empty week.
	WeekRoutine *domain.WeekRoutine
}

type AddExerciseInput struct {
	UserID    string
	RoutineID string
	Day       int
	Item      domain.ExerciseItem
}

type ReorderExerciseInput struct {
	UserID    string
	RoutineID string
	Day       int
	From      int
	To        int
}

func (s *RoutineService) List(ctx context.Context, userID string) ([]*domain.Routine, error) {
	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return state.Routines, nil
}

func (s *RoutineService) Get(ctx context.Context, userID, routineID string) (*domain.Routine, error) {
	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return state.Routine(routineID)
}

func (s *RoutineService) Create(ctx context.Context, input CreateRoutineInput) (*domain.Routine, error) {
	routine, err := domain.NewRoutine(input.RoutineID, input.Title)
	if err != nil {
		return nil, err
	}
	if input.WeekRoutine != nil {
		idx, err := exerciseIndex(ctx, s.catalog)
		if err != nil {
			return nil, err
		}
		for day, slot := range input.WeekRoutine {
			if err := idx.CheckItems(fmt.Sprintf("week_routine[%d]", day), slot); err != nil {
				return nil, err
			}
		}
		routine.WeekRoutine = *input.WeekRoutine
	}

	return s.mutateRoutine(ctx, input.UserID, routine.RoutineID, func(state *domain.UserState) error {
		return state.AddRoutine(routine)
	})
}

func (s *RoutineService) AddExercise(ctx context.Context, input AddExerciseInput) (*domain.Routine, error) {
	idx, err := exerciseIndex(ctx, s.catalog)
	if err != nil {
		return nil, err
	}
	if err := idx.CheckItems("", []domain.ExerciseItem{input.Item}); err != nil {
		return nil, err
	}

	return s.mutateRoutine(ctx, input.UserID, input.RoutineID, func(state *domain.UserState) error {
		return state.AddExercise(input.RoutineID, input.Day, input.Item)
	})
}

func (s *RoutineService) RemoveExercise(ctx context.Context, userID, routineID string, day, index int) (*domain.Routine, error) {
	return s.mutateRoutine(ctx, userID, routineID, func(state *domain.UserState) error {
		return state.RemoveExercise(routineID, day, index)
	})
}

func (s *RoutineService) ReorderExercise(ctx context.Context, input ReorderExerciseInput) (*domain.Routine, error) {
	return s.mutateRoutine(ctx, input.UserID, input.RoutineID, func(state *domain.UserState) error {
		return state.ReorderExercise(input.RoutineID, input.Day, input.From, input.To)
	})
}

func (s *RoutineService) Rename(ctx context.Context, userID, routineID, title string) (*domain.Routine, error) {
	return s.mutateRoutine(ctx, userID, routineID, func(state *domain.UserState) error {
		return state.RenameRoutine(routineID, title)
	})
}

func (s *RoutineService) Delete(ctx context.Context, userID, routineID string) error {
	_, err := s.store.Mutate(ctx, userID, func(state *domain.UserState) error {
		return state.DeleteRoutine(routineID)
	})
	return err
}

func (s *RoutineService) SetCurrentRoutine(ctx context.Context, userID, routineID string) error {
	_, err := s.store.Mutate(ctx, userID, func(state *domain.UserState) error {
		return state.SetCurrentRoutine(routineID)
	})
	return err
}

// Today returns the current routine and its exercises for the weekday of now.
// The routine is nil when the user has not picked one.
func (s *RoutineService) Today(ctx context.Context, userID string, now time.Time) (*domain.Routine, []domain.ExerciseItem, error) {
	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	current := state.CurrentRoutine()
	if current == nil {
		return nil, []domain.ExerciseItem{}, nil
	}
	return current, current.ExercisesOn(now.Weekday()), nil
}

func (s *RoutineService) mutateRoutine(ctx context.Context, userID, routineID string, fn func(*domain.UserState) error) (*domain.Routine, error) {
	state, err := s.store.Mutate(ctx, userID, fn)
	if err != nil {
		return nil, err
	}
	return state.Routine(routineID)
}
