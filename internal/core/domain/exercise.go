package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

// Body-part groups used by the default catalog.
const (
	CategoryUpper    = "upper"
	CategoryLower    = "lower"
	CategoryChest    = "chest"
	CategoryBack     = "back"
	CategoryShoulder = "shoulder"
	CategoryArm      = "arm"
	CategoryCore     = "core"
	CategoryCardio   = "cardio"
)

// Categories is the set of body-part groups an exercise belongs to. In JSON
// it accepts either a single string or an array of strings.
type Categories []string

func (c *Categories) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*c = Categories{}
		} else {
			*c = Categories{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = Categories(many)
	return nil
}

func (c Categories) Has(tag string) bool {
	return slices.Contains(c, tag)
}

// Exercise is a read-only catalog entry keyed by name.
type Exercise struct {
	Name     string     `json:"name" db:"name"`
	Category Categories `json:"category"`
	Part     []string   `json:"part"`
}

// ExerciseCatalog is the external, read-only source of exercises.
type ExerciseCatalog interface {
	ListExercises(ctx context.Context) ([]Exercise, error)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// MatchesExercise applies both catalog filters to a single entry.
func MatchesExercise(e Exercise, category, nameQuery string) bool {
	if category != "" && category != CategoryAll && !e.Category.Has(category) {
		return false
	}
	return strings.Contains(stripSpaces(e.Name), stripSpaces(nameQuery))
}

// FilterExercises yields catalog entries matching category and nameQuery.
// The sequence is lazy and can be ranged over any number of times.
func FilterExercises(catalog []Exercise, category, nameQuery string) iter.Seq[Exercise] {
	return func(yield func(Exercise) bool) {
		for _, e := range catalog {
			if !MatchesExercise(e, category, nameQuery) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// ExerciseIndex is the set of exercise names a catalog offers.
type ExerciseIndex map[string]struct{}

func IndexExercises(catalog []Exercise) ExerciseIndex {
	idx := make(ExerciseIndex, len(catalog))
	for _, e := range catalog {
		idx[e.Name] = struct{}{}
	}
	return idx
}

func (idx ExerciseIndex) Has(name string) bool {
	_, ok := idx[name]
	return ok
}

// CheckItems rejects items naming an exercise the catalog does not offer.
// Blank names are left to ExerciseItem.Validate. An empty prefix reports the
// bare "exercise" field.
func (idx ExerciseIndex) CheckItems(prefix string, items []ExerciseItem) error {
	for i, it := range items {
		if strings.TrimSpace(it.Exercise) == "" || idx.Has(it.Exercise) {
			continue
		}
		field := "exercise"
		if prefix != "" {
			field = fmt.Sprintf("%s[%d].exercise", prefix, i)
		}
		return NewValidationError(field, "oneof=catalog", fmt.Sprintf("unknown exercise %q", it.Exercise))
	}
	return nil
}
