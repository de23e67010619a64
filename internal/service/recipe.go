package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/repo"
)

// RecipeInput is one recipe submission: the scalar fields plus the full tag
// set and ingredient-line set. Create and Update always receive the whole
// composition — recipes are never partially written.
type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	ImageURL    string
	TagIDs      []uuid.UUID
	Ingredients []domain.IngredientLine
}

// RecipeService implements the recipe composition logic: it runs every
// uniqueness and bounds check against the submission and the store, then
// hands the whole composition to the repo for one atomic write.
type RecipeService struct {
	recipes     repo.RecipeRepo
	tags        repo.TagRepo
	ingredients repo.IngredientRepo
}

// NewRecipeService constructs a RecipeService backed by the provided repos.
func NewRecipeService(recipes repo.RecipeRepo, tags repo.TagRepo, ingredients repo.IngredientRepo) *RecipeService {
	return &RecipeService{recipes: recipes, tags: tags, ingredients: ingredients}
}

// Create validates and atomically persists a new recipe.
// Returns domain.ErrValidation for out-of-range or missing fields,
// domain.ErrDuplicateInSubmission for a repeated tag or ingredient,
// domain.ErrNotFound for a referenced tag or ingredient that does not exist,
// and domain.ErrConflict when the author already has a recipe with the same
// name sharing at least one tag.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, input RecipeInput) (domain.Recipe, error) {
	if err := s.validateSubmission(ctx, input, true); err != nil {
		return domain.Recipe{}, err
	}

	// Creation-only duplicate policy: same author, same name, ≥1 shared tag.
	// Deliberately narrow — ingredients are not considered.
	exists, err := s.recipes.ExistsByAuthorNameAndTags(ctx, authorID, input.Name, input.TagIDs)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Create: %w", err)
	}
	if exists {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Create: recipe with this name and tags: %w", domain.ErrConflict)
	}

	recipe := domain.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		ImageURL:    input.ImageURL,
		Ingredients: input.Ingredients,
	}

	created, err := s.recipes.Create(ctx, recipe, input.TagIDs)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Create: %w", err)
	}
	return created, nil
}

// Update validates and atomically overwrites an existing recipe: scalars are
// replaced, the tag set is replaced wholesale, and the ingredient lines are
// deleted and reinserted. Only the author may update; the cross-store
// name/tag conflict check is creation-only and deliberately skipped here.
// An empty ImageURL keeps the stored image.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uuid.UUID, input RecipeInput) (domain.Recipe, error) {
	existing, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Update: %w", err)
	}
	if existing.AuthorID != userID {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Update: not the author: %w", domain.ErrForbidden)
	}

	if input.ImageURL == "" {
		input.ImageURL = existing.ImageURL
	}
	if err := s.validateSubmission(ctx, input, false); err != nil {
		return domain.Recipe{}, err
	}

	recipe := domain.Recipe{
		ID:          recipeID,
		AuthorID:    existing.AuthorID,
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		ImageURL:    input.ImageURL,
		Ingredients: input.Ingredients,
	}

	updated, err := s.recipes.Update(ctx, recipe, input.TagIDs)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Update: %w", err)
	}
	return updated, nil
}

// GetByID returns a single recipe with tags and ingredient lines loaded.
func (s *RecipeService) GetByID(ctx context.Context, id uuid.UUID) (domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.GetByID: %w", err)
	}
	return recipe, nil
}

// ListPaged returns one page of recipes matching the filter, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *RecipeService) ListPaged(ctx context.Context, f domain.RecipeFilter, p domain.PaginationParams) ([]domain.Recipe, int64, error) {
	recipes, total, err := s.recipes.ListPaged(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.RecipeService.ListPaged: %w", err)
	}
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return recipes, total, nil
}

// Delete removes a recipe. Only the author may delete.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	existing, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("service.RecipeService.Delete: %w", err)
	}
	if existing.AuthorID != userID {
		return fmt.Errorf("service.RecipeService.Delete: not the author: %w", domain.ErrForbidden)
	}
	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return fmt.Errorf("service.RecipeService.Delete: %w", err)
	}
	return nil
}

// validateSubmission runs every pure check on one recipe submission:
// scalars, bounds, within-submission uniqueness, and referential existence.
// requireImage is true on creation, where a recipe cannot exist without one.
func (s *RecipeService) validateSubmission(ctx context.Context, input RecipeInput, requireImage bool) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Text) == "" {
		return fmt.Errorf("%w: text is required", domain.ErrValidation)
	}
	if requireImage && input.ImageURL == "" {
		return fmt.Errorf("%w: image is required", domain.ErrValidation)
	}
	if input.CookingTime < domain.MinCookingTime || input.CookingTime > domain.MaxCookingTime {
		return fmt.Errorf("%w: cooking_time must be between %d and %d",
			domain.ErrValidation, domain.MinCookingTime, domain.MaxCookingTime)
	}

	if len(input.TagIDs) == 0 {
		return fmt.Errorf("%w: tags must contain at least one element", domain.ErrValidation)
	}
	if err := validateUnique("tags", input.TagIDs); err != nil {
		return err
	}

	if len(input.Ingredients) == 0 {
		return fmt.Errorf("%w: ingredients must not be an empty list", domain.ErrValidation)
	}
	ingredientIDs := make([]uuid.UUID, len(input.Ingredients))
	for i, line := range input.Ingredients {
		if line.Amount < domain.MinAmount || line.Amount > domain.MaxAmount {
			return fmt.Errorf("%w: amount must be between %d and %d",
				domain.ErrValidation, domain.MinAmount, domain.MaxAmount)
		}
		ingredientIDs[i] = line.IngredientID
	}
	if err := validateUnique("ingredients", ingredientIDs); err != nil {
		return err
	}

	tags, err := s.tags.ListByIDs(ctx, input.TagIDs)
	if err != nil {
		return fmt.Errorf("service.RecipeService: check tags: %w", err)
	}
	if len(tags) != len(input.TagIDs) {
		return fmt.Errorf("referenced tag: %w", domain.ErrNotFound)
	}

	ings, err := s.ingredients.ListByIDs(ctx, ingredientIDs)
	if err != nil {
		return fmt.Errorf("service.RecipeService: check ingredients: %w", err)
	}
	if len(ings) != len(ingredientIDs) {
		return fmt.Errorf("referenced ingredient: %w", domain.ErrNotFound)
	}

	return nil
}
