package domain

import (
	"fmt"
	"slices"
)

// UserState is everything the routine and record operations read or write
// for one user. The caller loads it, applies one operation and persists it.
type UserState struct {
	UserID           string        `json:"user_id"`
	Routines         []*Routine    `json:"routines"`
	CurrentRoutineID string        `json:"current_routine_id,omitempty"`
	Completions      CompletionLog `json:"completions"`
}

func NewUserState(userID string) *UserState {
	return &UserState{
		UserID:      userID,
		Routines:    []*Routine{},
		Completions: CompletionLog{},
	}
}

func (s *UserState) indexOf(routineID string) int {
	return slices.IndexFunc(s.Routines, func(r *Routine) bool {
		return r.RoutineID == routineID
	})
}

// Routine returns the live routine with routineID.
func (s *UserState) Routine(routineID string) (*Routine, error) {
	i := s.indexOf(routineID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrRoutineNotFound, routineID)
	}
	return s.Routines[i], nil
}

// CurrentRoutine returns nil when no current routine is set.
func (s *UserState) CurrentRoutine() *Routine {
	if s.CurrentRoutineID == "" {
		return nil
	}
	r, err := s.Routine(s.CurrentRoutineID)
	if err != nil {
		return nil
	}
	return r
}

func (s *UserState) AddRoutine(r *Routine) error {
	if r == nil {
		return NewValidationError("routine", "required", "routine is required")
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if s.indexOf(r.RoutineID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateRoutineID, r.RoutineID)
	}
	s.Routines = append(s.Routines, r.Clone())
	return nil
}

func (s *UserState) AddExercise(routineID string, day int, item ExerciseItem) error {
	r, err := s.Routine(routineID)
	if err != nil {
		return err
	}
	return r.AddExercise(day, item)
}

func (s *UserState) RemoveExercise(routineID string, day, index int) error {
	r, err := s.Routine(routineID)
	if err != nil {
		return err
	}
	return r.RemoveExercise(day, index)
}

func (s *UserState) ReorderExercise(routineID string, day, from, to int) error {
	r, err := s.Routine(routineID)
	if err != nil {
		return err
	}
	return r.ReorderExercise(day, from, to)
}

func (s *UserState) RenameRoutine(routineID, title string) error {
	r, err := s.Routine(routineID)
	if err != nil {
		return err
	}
	return r.Rename(title)
}

// DeleteRoutine also clears the current routine reference when it pointed
// at the deleted routine.
func (s *UserState) DeleteRoutine(routineID string) error {
	i := s.indexOf(routineID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRoutineNotFound, routineID)
	}
	s.Routines = slices.Delete(s.Routines, i, i+1)
	if s.CurrentRoutineID == routineID {
		s.CurrentRoutineID = ""
	}
	return nil
}

// SetCurrentRoutine selects an owned routine; an empty id clears it.
func (s *UserState) SetCurrentRoutine(routineID string) error {
	if routineID == "" {
		s.CurrentRoutineID = ""
		return nil
	}
	if s.indexOf(routineID) < 0 {
		return fmt.Errorf("%w: %s", ErrRoutineNotFound, routineID)
	}
	s.CurrentRoutineID = routineID
	return nil
}

func (s *UserState) RecordCompletion(date string, items []ExerciseItem) error {
	return s.Completions.Record(date, items)
}

func (s *UserState) Clone() *UserState {
	c := &UserState{
		UserID:           s.UserID,
		Routines:         make([]*Routine, len(s.Routines)),
		CurrentRoutineID: s.CurrentRoutineID,
		Completions:      s.Completions.Clone(),
	}
	for i, r := range s.Routines {
		c.Routines[i] = r.Clone()
	}
	if c.Completions == nil {
		c.Completions = CompletionLog{}
	}
	return c
}
