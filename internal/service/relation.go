package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/repo"
)

// RelationService implements favorites and the shopping cart over the generic
// user↔recipe relation. The existence pre-check is a fast-fail courtesy; the
// store's primary key remains the final authority under concurrent requests.
type RelationService struct {
	relations repo.RelationRepo
	recipes   repo.RecipeRepo
}

// NewRelationService constructs a RelationService backed by the provided repos.
func NewRelationService(relations repo.RelationRepo, recipes repo.RecipeRepo) *RelationService {
	return &RelationService{relations: relations, recipes: recipes}
}

// Add stores a favorite or cart entry for the recipe and returns the recipe.
// Returns domain.ErrNotFound if the recipe does not exist and
// domain.ErrConflict if the user already has this relation to it.
func (s *RelationService) Add(ctx context.Context, kind domain.RelationKind, userID, recipeID uuid.UUID) (domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RelationService.Add: %w", err)
	}

	rel := domain.UserRecipeRelation{UserID: userID, RecipeID: recipeID, Kind: kind}

	exists, err := s.relations.Exists(ctx, rel)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RelationService.Add: %w", err)
	}
	if exists {
		return domain.Recipe{}, fmt.Errorf("service.RelationService.Add: recipe already in %s: %w", kind, domain.ErrConflict)
	}

	if err := s.relations.Add(ctx, rel); err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RelationService.Add: %w", err)
	}
	return recipe, nil
}

// Remove deletes a favorite or cart entry.
// Returns domain.ErrNotFound if the relation is not stored.
func (s *RelationService) Remove(ctx context.Context, kind domain.RelationKind, userID, recipeID uuid.UUID) error {
	rel := domain.UserRecipeRelation{UserID: userID, RecipeID: recipeID, Kind: kind}
	if err := s.relations.Remove(ctx, rel); err != nil {
		return fmt.Errorf("service.RelationService.Remove: %w", err)
	}
	return nil
}

// Marked returns which of the given recipes the user has a kind-relation to.
// Anonymous callers (userID == uuid.Nil) get an empty map.
func (s *RelationService) Marked(ctx context.Context, userID uuid.UUID, kind domain.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if userID == uuid.Nil {
		return map[uuid.UUID]bool{}, nil
	}
	marked, err := s.relations.MarkedRecipes(ctx, userID, kind, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("service.RelationService.Marked: %w", err)
	}
	return marked, nil
}
