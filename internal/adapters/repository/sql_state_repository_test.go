package repository

import (
	"context"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState(t *testing.T, userID string) *domain.UserState {
	t.Helper()
	state := domain.NewUserState(userID)

	for _, title := range []string{"Push", "Pull"} {
		r, err := domain.NewRoutine("", title)
		require.NoError(t, err)
		require.NoError(t, state.AddRoutine(r))
	}
	first := state.Routines[0].RoutineID
	require.NoError(t, state.AddExercise(first, 1, domain.ExerciseItem{Exercise: "벤치 프레스", Weight: 60, NumberOfTimes: 8, NumberOfSets: 3}))
	require.NoError(t, state.AddExercise(first, 1, domain.ExerciseItem{Exercise: "딥스", NumberOfTimes: 10, NumberOfSets: 3}))
	require.NoError(t, state.SetCurrentRoutine(first))

	require.NoError(t, state.RecordCompletion("2022-01-30", []domain.ExerciseItem{{Exercise: "랫 풀 다운", Weight: 40, NumberOfTimes: 12, NumberOfSets: 4}}))
	require.NoError(t, state.RecordCompletion("2022-01-10", []domain.ExerciseItem{}))
	return state
}

func TestSQLStateRepository(t *testing.T) {
	forEachDB(t, func(t *testing.T, db *sqlx.DB) {
		repo := NewSQLStateRepository(db)
		ctx := context.Background()

		t.Run("Unknown user loads an empty state", func(t *testing.T) {
			state, err := repo.LoadUserState(ctx, uuid.NewString())
			require.NoError(t, err)
			assert.NotNil(t, state.Routines)
			assert.Empty(t, state.Routines)
			assert.Empty(t, state.CurrentRoutineID)
			assert.Empty(t, state.Completions)
		})

		t.Run("Save then load round-trips", func(t *testing.T) {
			userID := uuid.NewString()
			want := sampleState(t, userID)

			require.NoError(t, repo.SaveUserState(ctx, userID, want))
			got, err := repo.LoadUserState(ctx, userID)
			require.NoError(t, err)

			assert.Equal(t, want.CurrentRoutineID, got.CurrentRoutineID)
			require.Len(t, got.Routines, 2)
			assert.Equal(t, "Push", got.Routines[0].Title)
			assert.Equal(t, "Pull", got.Routines[1].Title)
			assert.Equal(t, want.Routines[0].WeekRoutine, got.Routines[0].WeekRoutine)
			assert.WithinDuration(t, want.Routines[0].LastModified, got.Routines[0].LastModified, time.Millisecond)
			assert.Equal(t, want.Completions, got.Completions)
		})

		t.Run("Save replaces previous rows", func(t *testing.T) {
			userID := uuid.NewString()
			state := sampleState(t, userID)
			require.NoError(t, repo.SaveUserState(ctx, userID, state))

			require.NoError(t, state.DeleteRoutine(state.Routines[0].RoutineID))
			require.NoError(t, state.RecordCompletion("2022-01-30", []domain.ExerciseItem{{Exercise: "Run"}}))
			require.NoError(t, repo.SaveUserState(ctx, userID, state))

			got, err := repo.LoadUserState(ctx, userID)
			require.NoError(t, err)
			require.Len(t, got.Routines, 1)
			assert.Equal(t, "Pull", got.Routines[0].Title)
			assert.Empty(t, got.CurrentRoutineID)
			require.Len(t, got.Completions, 2)
			assert.Equal(t, "Run", got.Completions[1].List[0].Exercise)
		})

		t.Run("Users are isolated", func(t *testing.T) {
			a, b := uuid.NewString(), uuid.NewString()
			require.NoError(t, repo.SaveUserState(ctx, a, sampleState(t, a)))

			got, err := repo.LoadUserState(ctx, b)
			require.NoError(t, err)
			assert.Empty(t, got.Routines)
		})
	})
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openSQLiteTestDB(t)
	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db))
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x INT);\n\n CREATE TABLE b (y INT);\n")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE TABLE b (y INT)"}, got)
}
