package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/services"
)

func newRoutineService() (*services.RoutineService, *fakeStateRepo) {
	repo := newFakeStateRepo()
	return services.NewRoutineService(services.NewStateStore(repo), &fakeCatalog{}), repo
}

func TestRoutineService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Empty routine with default title is persisted", func(t *testing.T) {
		svc, repo := newRoutineService()

		r, err := svc.Create(ctx, services.CreateRoutineInput{UserID: "u1"})

		require.NoError(t, err)
		assert.NotEmpty(t, r.RoutineID)
		assert.Equal(t, domain.DefaultRoutineTitle, r.Title)

		saved := repo.saved("u1")
		require.NotNil(t, saved)
		require.Len(t, saved.Routines, 1)
		assert.Equal(t, r.RoutineID, saved.Routines[0].RoutineID)
	})

	t.Run("Success: Imported week is kept", func(t *testing.T) {
		svc, _ := newRoutineService()
		var week domain.WeekRoutine
		week[2] = []domain.ExerciseItem{{Exercise: "Squat", Weight: 100, NumberOfTimes: 5, NumberOfSets: 5}}

		r, err := svc.Create(ctx, services.CreateRoutineInput{UserID: "u1", RoutineID: "r-1", Title: "Legs", WeekRoutine: &week})

		require.NoError(t, err)
		assert.Equal(t, "r-1", r.RoutineID)
		assert.Equal(t, week[2], r.WeekRoutine[2])
	})

	t.Run("Fail: Imported week naming an unknown exercise", func(t *testing.T) {
		svc, repo := newRoutineService()
		var week domain.WeekRoutine
		week[4] = []domain.ExerciseItem{{Exercise: "Squat"}, {Exercise: "Moonwalk"}}

		_, err := svc.Create(ctx, services.CreateRoutineInput{UserID: "u1", RoutineID: "r-1", WeekRoutine: &week})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "week_routine[4][1].exercise", ve.Field)
		assert.Equal(t, "oneof=catalog", ve.Constraint)
		assert.Zero(t, repo.saves)
	})

	t.Run("Fail: Duplicate id is rejected and nothing is saved", func(t *testing.T) {
		svc, repo := newRoutineService()
		_, err := svc.Create(ctx, services.CreateRoutineInput{UserID: "u1", RoutineID: "r-1"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, services.CreateRoutineInput{UserID: "u1", RoutineID: "r-1"})

		assert.ErrorIs(t, err, domain.ErrDuplicateRoutineID)
		assert.Equal(t, 1, repo.saves)
	})
}

func TestRoutineService_Mutations(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*services.RoutineService, *fakeStateRepo) {
		svc, repo := newRoutineService()
		_, err := svc.Create(ctx, services.CreateRoutineInput{UserID: "u1", RoutineID: "r-1"})
		require.NoError(t, err)
		return svc, repo
	}

	t.Run("Success: Add, reorder, rename and remove", func(t *testing.T) {
		svc, repo := setup(t)

		_, err := svc.AddExercise(ctx, services.AddExerciseInput{UserID: "u1", RoutineID: "r-1", Day: 1, Item: domain.ExerciseItem{Exercise: "랫 풀 다운", Weight: 40, NumberOfTimes: 12, NumberOfSets: 4}})
		require.NoError(t, err)
		_, err = svc.AddExercise(ctx, services.AddExerciseInput{UserID: "u1", RoutineID: "r-1", Day: 1, Item: domain.ExerciseItem{Exercise: "Row"}})
		require.NoError(t, err)

		r, err := svc.ReorderExercise(ctx, services.ReorderExerciseInput{UserID: "u1", RoutineID: "r-1", Day: 1, From: 1, To: 0})
		require.NoError(t, err)
		assert.Equal(t, "Row", r.WeekRoutine[1][0].Exercise)

		r, err = svc.Rename(ctx, "u1", "r-1", "Pull")
		require.NoError(t, err)
		assert.Equal(t, "Pull", r.Title)

		r, err = svc.RemoveExercise(ctx, "u1", "r-1", 1, 0)
		require.NoError(t, err)
		require.Len(t, r.WeekRoutine[1], 1)
		assert.Equal(t, "랫 풀 다운", r.WeekRoutine[1][0].Exercise)

		saved := repo.saved("u1")
		assert.Equal(t, r.WeekRoutine, saved.Routines[0].WeekRoutine)
	})

	t.Run("Fail: Invalid item does not reach storage", func(t *testing.T) {
		svc, repo := setup(t)
		savesBefore := repo.saves

		_, err := svc.AddExercise(ctx, services.AddExerciseInput{UserID: "u1", RoutineID: "r-1", Day: 1, Item: domain.ExerciseItem{Exercise: "랫 풀 다운", Weight: 1000}})

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, savesBefore, repo.saves)
		assert.Empty(t, repo.saved("u1").Routines[0].WeekRoutine[1])
	})

	t.Run("Fail: Unknown exercise does not reach storage", func(t *testing.T) {
		svc, repo := setup(t)
		savesBefore := repo.saves

		_, err := svc.AddExercise(ctx, services.AddExerciseInput{UserID: "u1", RoutineID: "r-1", Day: 1, Item: domain.ExerciseItem{Exercise: "Moonwalk"}})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "exercise", ve.Field)
		assert.Equal(t, "oneof=catalog", ve.Constraint)
		assert.Equal(t, savesBefore, repo.saves)
	})

	t.Run("Fail: Catalog outage is returned", func(t *testing.T) {
		repo := newFakeStateRepo()
		boom := errors.New("catalog down")
		svc := services.NewRoutineService(services.NewStateStore(repo), &fakeCatalog{err: boom})

		_, err := svc.AddExercise(ctx, services.AddExerciseInput{UserID: "u1", RoutineID: "r-1", Day: 1, Item: domain.ExerciseItem{Exercise: "Row"}})

		assert.ErrorIs(t, err, boom)
		assert.Zero(t, repo.saves)
	})

	t.Run("Fail: Errors surface with their sentinel", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.AddExercise(ctx, services.AddExerciseInput{UserID: "u1", RoutineID: "r-1", Day: 7, Item: domain.ExerciseItem{Exercise: "Squat"}})
		assert.ErrorIs(t, err, domain.ErrInvalidDayIndex)

		_, err = svc.RemoveExercise(ctx, "u1", "r-1", 0, 0)
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

		_, err = svc.Rename(ctx, "u1", "nope", "x")
		assert.ErrorIs(t, err, domain.ErrRoutineNotFound)
	})

	t.Run("Fail: Save error is returned as is", func(t *testing.T) {
		svc, repo := setup(t)
		boom := errors.New("disk full")
		repo.saveError = boom

		_, err := svc.Rename(ctx, "u1", "r-1", "Pull")

		assert.Same(t, boom, err)
		repo.saveError = nil
		r, _ := svc.Get(ctx, "u1", "r-1")
		assert.Equal(t, domain.DefaultRoutineTitle, r.Title)
	})

	t.Run("Concurrency: Parallel adds are serialized per user", func(t *testing.T) {
		svc, repo := setup(t)

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.AddExercise(ctx, services.AddExerciseInput{UserID: "u1", RoutineID: "r-1", Day: 3, Item: domain.ExerciseItem{Exercise: "Plank"}})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Len(t, repo.saved("u1").Routines[0].WeekRoutine[3], 50)
	})
}

func TestRoutineService_CurrentRoutine(t *testing.T) {
	ctx := context.Background()
	svc, repo := newRoutineService()
	_, err := svc.Create(ctx, services.CreateRoutineInput{UserID: "u1", RoutineID: "r-1"})
	require.NoError(t, err)
	_, err = svc.AddExercise(ctx, services.AddExerciseInput{UserID: "u1", RoutineID: "r-1", Day: int(time.Monday), Item: domain.ExerciseItem{Exercise: "Bench"}})
	require.NoError(t, err)

	monday := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	r, items, err := svc.Today(ctx, "u1", monday)
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.Empty(t, items)

	assert.ErrorIs(t, svc.SetCurrentRoutine(ctx, "u1", "missing"), domain.ErrRoutineNotFound)
	require.NoError(t, svc.SetCurrentRoutine(ctx, "u1", "r-1"))

	r, items, err = svc.Today(ctx, "u1", monday)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "Bench", items[0].Exercise)

	require.NoError(t, svc.Delete(ctx, "u1", "r-1"))
	assert.Empty(t, repo.saved("u1").CurrentRoutineID)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
