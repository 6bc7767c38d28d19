package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

type CatalogService struct {
	catalog domain.ExerciseCatalog
}

func NewCatalogService(catalog domain.ExerciseCatalog) *CatalogService {
	return &CatalogService{
		catalog: catalog,
	}
}

// Filter loads the catalog and keeps the exercises matching both the
// category tag and the whitespace-insensitive name query.
func (s *CatalogService) Filter(ctx context.Context, category, nameQuery string) ([]domain.Exercise, error) {
	all, err := s.catalog.ListExercises(ctx)
	if err != nil {
		return nil, err
	}

	result := slices.Collect(domain.FilterExercises(all, category, nameQuery))
	if result == nil {
		result = []domain.Exercise{}
	}
	return result, nil
}

// exerciseIndex loads the names items may reference.
func exerciseIndex(ctx context.Context, catalog domain.ExerciseCatalog) (domain.ExerciseIndex, error) {
	all, err := catalog.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog service: failed to load exercises: %w", err)
	}
	return domain.IndexExercises(all), nil
}
