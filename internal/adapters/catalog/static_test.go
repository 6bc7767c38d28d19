package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.Positive(t, c.Len())

	all, err := c.ListExercises(context.Background())
	require.NoError(t, err)

	var names []string
	for e := range domain.FilterExercises(all, domain.CategoryBack, "랫풀") {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"랫 풀 다운"}, names)
}

func TestParse(t *testing.T) {
	t.Run("Single string category", func(t *testing.T) {
		c, err := Parse([]byte(`[{"name":"Run","category":"cardio","part":[]}]`))
		require.NoError(t, err)
		all, _ := c.ListExercises(context.Background())
		assert.True(t, all[0].Category.Has("cardio"))
	})

	t.Run("Duplicate names", func(t *testing.T) {
		_, err := Parse([]byte(`[{"name":"Run"},{"name":"Run"}]`))
		assert.ErrorContains(t, err, "duplicate")
	})

	t.Run("Missing name", func(t *testing.T) {
		_, err := Parse([]byte(`[{"category":"core"}]`))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Row","category":["back"],"part":["등"]}]`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), def.Len())
}

func TestListExercises_ReturnsCopy(t *testing.T) {
	c := Default()
	first, _ := c.ListExercises(context.Background())
	first[0].Name = "changed"

	second, _ := c.ListExercises(context.Background())
	assert.NotEqual(t, "changed", second[0].Name)
}
