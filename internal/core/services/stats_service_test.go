package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/services"
)

func TestStatsService_GetPeriodStats(t *testing.T) {
	ctx := context.Background()
	userID := "user-stats-1"

	startDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	seed := func(t *testing.T) *services.StateStore {
		repo := newFakeStateRepo()
		store := services.NewStateStore(repo)
		_, err := store.Mutate(ctx, userID, func(s *domain.UserState) error {
			if err := s.RecordCompletion("2024-01-09", []domain.ExerciseItem{{Exercise: "Squat", Weight: 200, NumberOfTimes: 1, NumberOfSets: 1}}); err != nil {
				return err
			}
			if err := s.RecordCompletion("2024-01-10", []domain.ExerciseItem{
				{Exercise: "Squat", Weight: 100, NumberOfTimes: 5, NumberOfSets: 5},
				{Exercise: "Squat", Weight: 110, NumberOfTimes: 3, NumberOfSets: 1},
				{Exercise: "Bench", Weight: 60, NumberOfTimes: 8, NumberOfSets: 3},
			}); err != nil {
				return err
			}
			if err := s.RecordCompletion("2024-01-11", []domain.ExerciseItem{}); err != nil {
				return err
			}
			return s.RecordCompletion("2024-01-12", []domain.ExerciseItem{{Exercise: "Squat", Weight: 80, NumberOfTimes: 10, NumberOfSets: 2}})
		})
		require.NoError(t, err)
		return store
	}

	t.Run("Success: Aggregates volume and fills rest days", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := services.NewStatsService(seed(t), userRepo)
		userRepo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, CurrentStreak: 1, LongestStreak: 4}, nil)

		stats, err := svc.GetPeriodStats(ctx, domain.StatsInput{UserID: userID, StartDate: startDate, EndDate: endDate})

		require.NoError(t, err)
		assert.Equal(t, "2024-01-10", stats.StartDate)
		assert.Equal(t, "2024-01-12", stats.EndDate)
		assert.Equal(t, 3, stats.DaysInPeriod)
		assert.Equal(t, 2, stats.DaysPerformed)
		assert.InDelta(t, 66.66, stats.WorkoutRate, 0.01)

		day1 := 100*5*5 + 110*3*1 + 60*8*3
		assert.Equal(t, []int{day1, 0, 1600}, stats.DailyVolume)
		assert.Equal(t, day1+1600, stats.TotalVolume)
		assert.Equal(t, 5+1+3+2, stats.TotalSets)

		require.Len(t, stats.Exercises, 2)
		squat := stats.Exercises[0]
		assert.Equal(t, "Squat", squat.Exercise)
		assert.Equal(t, 2, squat.Days)
		assert.Equal(t, 8, squat.TotalSets)
		assert.Equal(t, 25+3+20, squat.TotalReps)
		assert.Equal(t, 110, squat.BestWeight)
		assert.Equal(t, "Bench", stats.Exercises[1].Exercise)

		assert.Equal(t, domain.Streak{Current: 1, Longest: 4}, stats.Streak)
		userRepo.AssertExpectations(t)
	})

	t.Run("Fail: End before start", func(t *testing.T) {
		svc := services.NewStatsService(seed(t), new(MockUserRepo))

		_, err := svc.GetPeriodStats(ctx, domain.StatsInput{UserID: userID, StartDate: endDate, EndDate: startDate})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Fail: Period longer than a leap year", func(t *testing.T) {
		svc := services.NewStatsService(seed(t), new(MockUserRepo))

		_, err := svc.GetPeriodStats(ctx, domain.StatsInput{UserID: userID, StartDate: startDate, EndDate: startDate.AddDate(1, 0, 1)})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Fail: Year past 9999 names the field", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := services.NewStatsService(seed(t), userRepo)

		_, err := svc.GetPeriodStats(ctx, domain.StatsInput{UserID: userID, StartDate: startDate, EndDate: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "end_date", ve.Field)
		assert.Equal(t, "iso8601", ve.Constraint)
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Fail: Should propagate user repository errors", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := services.NewStatsService(seed(t), userRepo)
		userRepo.On("GetByID", ctx, userID).Return(nil, errors.New("db down"))

		_, err := svc.GetPeriodStats(ctx, domain.StatsInput{UserID: userID, StartDate: startDate, EndDate: endDate})

		assert.EqualError(t, err, "db down")
		userRepo.AssertCalled(t, "GetByID", mock.Anything, userID)
	})
}
