package repository

import (
	"context"
	"testing"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCatalogRepository(t *testing.T) {
	for _, driver := range []string{DriverPgx, DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			db := openPostgresTestDB(t, driver)
			repo := NewPostgresCatalogRepository(db)
			ctx := context.Background()

			name := "테스트 " + uuid.NewString()
			require.NoError(t, repo.Upsert(ctx, []domain.Exercise{
				{Name: name, Category: domain.Categories{"upper", "back"}, Part: []string{"광배근", "승모근 상부"}},
			}))
			require.NoError(t, repo.Upsert(ctx, []domain.Exercise{
				{Name: name, Category: domain.Categories{"back"}, Part: nil},
			}))

			all, err := repo.ListExercises(ctx)
			require.NoError(t, err)

			var found *domain.Exercise
			for i := range all {
				if all[i].Name == name {
					found = &all[i]
				}
			}
			require.NotNil(t, found)
			assert.Equal(t, domain.Categories{"back"}, found.Category)
			assert.Empty(t, found.Part)
		})
	}
}

func TestTextArray(t *testing.T) {
	v, err := textArray(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	v, err = textArray([]string{"승모근 상부", "a,b"})
	require.NoError(t, err)
	assert.Equal(t, `{"승모근 상부","a,b"}`, v)
}
