package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

const MaxStatsDays = 366

type StatsService struct {
	store    *StateStore
	userRepo domain.UserRepository
}

func NewStatsService(store *StateStore, userRepo domain.UserRepository) *StatsService {
	return &StatsService{
		store:    store,
		userRepo: userRepo,
	}
}

func (s *StatsService) GetPeriodStats(ctx context.Context, input domain.StatsInput) (*domain.PeriodStats, error) {
	startDate, err := periodDay("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := periodDay("end_date", input.EndDate)
	if err != nil {
		return nil, err
	}

	if endDate.Before(startDate) {
		return nil, domain.NewValidationError("end_date", "gtefield=start_date", "end_date must not be before start_date")
	}
	if int(endDate.Sub(startDate).Hours()/24)+1 > MaxStatsDays {
		return nil, domain.NewValidationError("end_date", "max_range=366", "period cannot exceed 366 days")
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	state, err := s.store.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	start := domain.FormatDate(startDate)
	end := domain.FormatDate(endDate)

	byDate := make(map[string][]domain.ExerciseItem)
	for _, c := range state.Completions.Between(start, end) {
		byDate[c.Date] = c.List
	}

	stats := &domain.PeriodStats{
		StartDate:   start,
		EndDate:     end,
		DailyVolume: make([]int, 0),
		Exercises:   make([]domain.ExerciseStat, 0),
		Streak:      user.Streak(),
	}

	exerciseIdx := make(map[string]int)

	for current := startDate; !current.After(endDate); current = current.AddDate(0, 0, 1) {
		list := byDate[domain.FormatDate(current)]

		dayVolume := 0
		seenToday := make(map[string]bool)
		for _, it := range list {
			dayVolume += it.Volume()
			stats.TotalSets += it.NumberOfSets

			i, ok := exerciseIdx[it.Exercise]
			if !ok {
				i = len(stats.Exercises)
				exerciseIdx[it.Exercise] = i
				stats.Exercises = append(stats.Exercises, domain.ExerciseStat{Exercise: it.Exercise})
			}
			es := &stats.Exercises[i]
			if !seenToday[it.Exercise] {
				seenToday[it.Exercise] = true
				es.Days++
			}
			es.TotalSets += it.NumberOfSets
			es.TotalReps += it.NumberOfTimes * it.NumberOfSets
			es.Volume += it.Volume()
			es.BestWeight = max(es.BestWeight, it.Weight)
		}

		if len(list) > 0 {
			stats.DaysPerformed++
		}
		stats.TotalVolume += dayVolume
		stats.DailyVolume = append(stats.DailyVolume, dayVolume)
		stats.DaysInPeriod++
	}

	if stats.DaysInPeriod > 0 {
		stats.WorkoutRate = float64(stats.DaysPerformed) / float64(stats.DaysInPeriod) * 100
	}

	return stats, nil
}

// periodDay truncates t to its calendar date. Dates that do not render as
// YYYY-MM-DD, such as years past 9999, are rejected.
func periodDay(field string, t time.Time) (time.Time, error) {
	day, err := domain.ParseDate(domain.FormatDate(t))
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "iso8601", field+" must be a valid YYYY-MM-DD date")
	}
	return day, nil
}
