package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	DaysPerWeek         = 7
	DefaultRoutineTitle = "새 루틴"
	MaxRoutineTitleLen  = 100

	MaxWeight        = 999
	MaxNumberOfTimes = 999
	MaxNumberOfSets  = 20
)

// ExerciseItem is one planned or performed exercise. It has no identity
// beyond its position inside a day slot.
type ExerciseItem struct {
	Exercise      string `json:"exercise"`
	Weight        int    `json:"weight"`
	NumberOfTimes int    `json:"number_of_times"`
	NumberOfSets  int    `json:"number_of_sets"`
}

func (it ExerciseItem) Validate() error {
	if strings.TrimSpace(it.Exercise) == "" {
		return NewValidationError("exercise", "required", "exercise name is required")
	}
	if it.Weight < 0 || it.Weight > MaxWeight {
		return NewValidationError("weight", "range=0-999", "weight must be between 0 and 999")
	}
	if it.NumberOfTimes < 0 || it.NumberOfTimes > MaxNumberOfTimes {
		return NewValidationError("number_of_times", "range=0-999", "number of times must be between 0 and 999")
	}
	if it.NumberOfSets < 0 || it.NumberOfSets > MaxNumberOfSets {
		return NewValidationError("number_of_sets", "range=0-20", "number of sets must be between 0 and 20")
	}
	return nil
}

// Volume is weight x reps x sets.
func (it ExerciseItem) Volume() int {
	return it.Weight * it.NumberOfTimes * it.NumberOfSets
}

func validateItems(prefix string, items []ExerciseItem) error {
	for i, it := range items {
		if err := it.Validate(); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return NewValidationError(fmt.Sprintf("%s[%d].%s", prefix, i, ve.Field), ve.Constraint, ve.Message)
			}
			return err
		}
	}
	return nil
}

// WeekRoutine always holds exactly seven slots, Sunday first.
type WeekRoutine [DaysPerWeek][]ExerciseItem

func (w WeekRoutine) MarshalJSON() ([]byte, error) {
	slots := make([][]ExerciseItem, DaysPerWeek)
	for i, s := range w {
		if s == nil {
			s = []ExerciseItem{}
		}
		slots[i] = s
	}
	return json.Marshal(slots)
}

func (w *WeekRoutine) UnmarshalJSON(data []byte) error {
	var slots [][]ExerciseItem
	if err := json.Unmarshal(data, &slots); err != nil {
		return err
	}
	if len(slots) != DaysPerWeek {
		return NewValidationError("week_routine", "len=7", "week routine must have exactly 7 days")
	}
	for i, s := range slots {
		if s == nil {
			s = []ExerciseItem{}
		}
		w[i] = s
	}
	return nil
}

func (w WeekRoutine) clone() WeekRoutine {
	var out WeekRoutine
	for i, s := range w {
		out[i] = append([]ExerciseItem{}, s...)
	}
	return out
}

type Routine struct {
	RoutineID    string      `json:"routine_id"`
	Title        string      `json:"title"`
	LastModified time.Time   `json:"last_modified"`
	WeekRoutine  WeekRoutine `json:"week_routine"`
}

// NewRoutine returns an empty week. A blank id is generated, a blank title
// falls back to DefaultRoutineTitle.
func NewRoutine(id, title string) (*Routine, error) {
	if strings.TrimSpace(id) == "" {
		id = uuid.New().String()
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultRoutineTitle
	}
	cleanTitle, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	r := &Routine{
		RoutineID:    id,
		Title:        cleanTitle,
		LastModified: time.Now().UTC(),
	}
	for i := range r.WeekRoutine {
		r.WeekRoutine[i] = []ExerciseItem{}
	}
	return r, nil
}

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", NewValidationError("title", "required", "routine title cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxRoutineTitleLen {
		return "", NewValidationError("title", "max=100", "routine title is too long (max 100 chars)")
	}
	return trimmed, nil
}

func validateDay(day int) error {
	if day < 0 || day >= DaysPerWeek {
		return fmt.Errorf("%w: got %d", ErrInvalidDayIndex, day)
	}
	return nil
}

func (r *Routine) validateIndex(day, index int) error {
	if n := len(r.WeekRoutine[day]); index < 0 || index >= n {
		return fmt.Errorf("%w: index %d, day %d has %d exercises", ErrIndexOutOfRange, index, day, n)
	}
	return nil
}

// Validate checks a routine coming from outside (API payload or storage).
func (r *Routine) Validate() error {
	if strings.TrimSpace(r.RoutineID) == "" {
		return NewValidationError("routine_id", "required", "routine id is required")
	}
	if _, err := validateTitle(r.Title); err != nil {
		return err
	}
	for day, slot := range r.WeekRoutine {
		if err := validateItems(fmt.Sprintf("week_routine[%d]", day), slot); err != nil {
			return err
		}
	}
	return nil
}

func (r *Routine) touch() {
	r.LastModified = time.Now().UTC()
}

func (r *Routine) AddExercise(day int, item ExerciseItem) error {
	if err := validateDay(day); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}

	slot := make([]ExerciseItem, 0, len(r.WeekRoutine[day])+1)
	slot = append(slot, r.WeekRoutine[day]...)
	r.WeekRoutine[day] = append(slot, item)
	r.touch()
	return nil
}

func (r *Routine) RemoveExercise(day, index int) error {
	if err := validateDay(day); err != nil {
		return err
	}
	if err := r.validateIndex(day, index); err != nil {
		return err
	}

	r.WeekRoutine[day] = slices.Delete(slices.Clone(r.WeekRoutine[day]), index, index+1)
	r.touch()
	return nil
}

// ReorderExercise moves the entry at from so that it ends up at to; the
// entries in between shift by one.
func (r *Routine) ReorderExercise(day, from, to int) error {
	if err := validateDay(day); err != nil {
		return err
	}
	if err := r.validateIndex(day, from); err != nil {
		return err
	}
	if err := r.validateIndex(day, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	slot := slices.Clone(r.WeekRoutine[day])
	moved := slot[from]
	slot = slices.Delete(slot, from, from+1)
	r.WeekRoutine[day] = slices.Insert(slot, to, moved)
	r.touch()
	return nil
}

func (r *Routine) Rename(title string) error {
	clean, err := validateTitle(title)
	if err != nil {
		return err
	}
	r.Title = clean
	r.touch()
	return nil
}

// ExercisesOn returns the plan for a weekday.
func (r *Routine) ExercisesOn(weekday time.Weekday) []ExerciseItem {
	return slices.Clone(r.WeekRoutine[int(weekday)%DaysPerWeek])
}

func (r *Routine) Clone() *Routine {
	c := *r
	c.WeekRoutine = r.WeekRoutine.clone()
	return &c
}
