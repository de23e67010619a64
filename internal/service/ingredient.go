package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/repo"
)

// IngredientService implements catalog reads and the seed import.
type IngredientService struct {
	ingredients repo.IngredientRepo
}

// NewIngredientService constructs an IngredientService backed by the provided repo.
func NewIngredientService(ingredients repo.IngredientRepo) *IngredientService {
	return &IngredientService{ingredients: ingredients}
}

// Create validates and inserts one catalog entry.
// Returns domain.ErrConflict if the (name, unit) pair already exists.
func (s *IngredientService) Create(ctx context.Context, ing domain.Ingredient) (domain.Ingredient, error) {
	if strings.TrimSpace(ing.Name) == "" {
		return domain.Ingredient{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(ing.MeasurementUnit) == "" {
		return domain.Ingredient{}, fmt.Errorf("%w: measurement_unit is required", domain.ErrValidation)
	}

	created, err := s.ingredients.Create(ctx, ing)
	if err != nil {
		return domain.Ingredient{}, fmt.Errorf("service.IngredientService.Create: %w", err)
	}
	return created, nil
}

// Import bulk-loads catalog entries, all or nothing. Rejects entries with
// missing fields before touching the store.
func (s *IngredientService) Import(ctx context.Context, ings []domain.Ingredient) error {
	for _, ing := range ings {
		if strings.TrimSpace(ing.Name) == "" || strings.TrimSpace(ing.MeasurementUnit) == "" {
			return fmt.Errorf("%w: every entry needs name and measurement_unit", domain.ErrValidation)
		}
	}
	if err := s.ingredients.CreateBatch(ctx, ings); err != nil {
		return fmt.Errorf("service.IngredientService.Import: %w", err)
	}
	return nil
}

// GetByID returns a single catalog entry.
func (s *IngredientService) GetByID(ctx context.Context, id uuid.UUID) (domain.Ingredient, error) {
	ing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		return domain.Ingredient{}, fmt.Errorf("service.IngredientService.GetByID: %w", err)
	}
	return ing, nil
}

// List returns catalog entries whose name starts with prefix, ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *IngredientService) List(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	ings, err := s.ingredients.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("service.IngredientService.List: %w", err)
	}
	if ings == nil {
		ings = []domain.Ingredient{}
	}
	return ings, nil
}
