package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

//go:embed exercises.json
var defaultExercises []byte

// Static serves a fixed list of exercises loaded at startup.
type Static struct {
	exercises []domain.Exercise
}

var _ domain.ExerciseCatalog = (*Static)(nil)

// Default returns the catalog bundled with the binary.
func Default() *Static {
	s, err := Parse(defaultExercises)
	if err != nil {
		panic(fmt.Sprintf("catalog: bundled exercises.json is invalid: %v", err))
	}
	return s
}

// Load reads a JSON catalog file. An empty path yields the bundled catalog.
func Load(path string) (*Static, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of exercises. Names must be unique and
// non-empty.
func Parse(data []byte) (*Static, error) {
	var exercises []domain.Exercise
	if err := json.Unmarshal(data, &exercises); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	seen := make(map[string]bool, len(exercises))
	for i, e := range exercises {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog: exercise %d has no name", i)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("catalog: duplicate exercise %q", e.Name)
		}
		seen[e.Name] = true
	}
	return &Static{exercises: exercises}, nil
}

func (s *Static) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return slices.Clone(s.exercises), nil
}

func (s *Static) Len() int {
	return len(s.exercises)
}
