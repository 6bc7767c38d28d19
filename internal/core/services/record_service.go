package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

// StreakQueue receives the ids of users whose completion log changed.
type StreakQueue interface {
	Enqueue(userID string)
}

type RecordService struct {
	store   *StateStore
	catalog domain.ExerciseCatalog
	worker  StreakQueue
}

func NewRecordService(store *StateStore, catalog domain.ExerciseCatalog, worker StreakQueue) *RecordService {
	return &RecordService{
		store:   store,
		catalog: catalog,
		worker:  worker,
	}
}

type RecordInput struct {
	UserID string
	Date   string
	List   []domain.ExerciseItem
}

// Record stores the performed list for a date, replacing any earlier record.
func (s *RecordService) Record(ctx context.Context, input RecordInput) (*domain.CompleteItem, error) {
	if len(input.List) > 0 {
		idx, err := exerciseIndex(ctx, s.catalog)
		if err != nil {
			return nil, err
		}
		if err := idx.CheckItems("list", input.List); err != nil {
			return nil, err
		}
	}

	state, err := s.store.Mutate(ctx, input.UserID, func(state *domain.UserState) error {
		return state.RecordCompletion(input.Date, input.List)
	})
	if err != nil {
		return nil, err
	}

	if s.worker != nil {
		s.worker.Enqueue(input.UserID)
	}

	item, _ := state.Completions.Find(input.Date)
	return &item, nil
}

func (s *RecordService) Get(ctx context.Context, userID, date string) (*domain.CompleteItem, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, ok := state.Completions.Find(date)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCompletionNotFound, date)
	}
	return &item, nil
}

// List returns records between from and to inclusive, ordered by date.
// Empty bounds are open.
func (s *RecordService) List(ctx context.Context, userID, from, to string) ([]domain.CompleteItem, error) {
	for _, bound := range []struct{ field, value string }{{"from", from}, {"to", to}} {
		if bound.value == "" {
			continue
		}
		if _, err := domain.ParseDate(bound.value); err != nil {
			return nil, domain.NewValidationError(bound.field, "iso8601", bound.field+" must be a valid YYYY-MM-DD date")
		}
	}
	if from != "" && to != "" && from > to {
		return nil, domain.NewValidationError("from", "ltefield=to", "from must not be after to")
	}

	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := state.Completions.Between(from, to)
	if items == nil {
		items = []domain.CompleteItem{}
	}
	return items, nil
}

// MonthGrid builds the calendar of a month. monthIndex is 0-based and may be
// out of range; it is normalized with year carry.
func (s *RecordService) MonthGrid(ctx context.Context, userID string, year, monthIndex int) (domain.YearMonth, []domain.CalendarCell, error) {
	ym := domain.NormalizeYearMonth(year, monthIndex)

	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return ym, nil, err
	}

	return ym, domain.BuildMonthGrid(ym, state.Completions), nil
}
