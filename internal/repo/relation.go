package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

// RelationRepo defines the persistence operations for the generic user↔recipe
// relation (favorites and cart entries, discriminated by kind) and the
// shopping-list aggregation that reads across the cart.
type RelationRepo interface {
	// Add inserts a relation row. Returns domain.ErrConflict if the
	// (user, recipe, kind) tuple already exists — the primary key is the
	// final authority under concurrent requests.
	Add(ctx context.Context, rel domain.UserRecipeRelation) error

	// Remove deletes a relation row.
	// Returns domain.ErrNotFound if no such relation exists.
	Remove(ctx context.Context, rel domain.UserRecipeRelation) error

	// Exists reports whether the (user, recipe, kind) tuple is stored.
	Exists(ctx context.Context, rel domain.UserRecipeRelation) (bool, error)

	// MarkedRecipes returns, for the given user and kind, the subset of
	// recipeIDs that have a stored relation. Used to decorate recipe
	// listings with is_favorited / is_in_shopping_cart flags in one query.
	MarkedRecipes(ctx context.Context, userID uuid.UUID, kind domain.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	// AggregateCart groups the ingredient lines of every recipe in the
	// user's cart by (ingredient name, measurement unit) and sums amounts.
	// Results are ordered by name then unit for reproducible output.
	AggregateCart(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error)
}

// pgRelationRepo is the Postgres implementation of RelationRepo.
type pgRelationRepo struct {
	db db
}

// NewRelationRepo constructs a RelationRepo backed by the provided db connection.
func NewRelationRepo(db db) RelationRepo {
	return &pgRelationRepo{db: db}
}

// Add inserts a relation row, relying on the primary key for uniqueness.
func (r *pgRelationRepo) Add(ctx context.Context, rel domain.UserRecipeRelation) error {
	const q = `
		INSERT INTO user_recipe_relations (user_id, recipe_id, kind)
		VALUES (@user_id, @recipe_id, @kind)`

	args := pgx.NamedArgs{"user_id": rel.UserID, "recipe_id": rel.RecipeID, "kind": string(rel.Kind)}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repo.RelationRepo.Add: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.RelationRepo.Add: %w", err)
	}
	return nil
}

// Remove deletes a relation row.
func (r *pgRelationRepo) Remove(ctx context.Context, rel domain.UserRecipeRelation) error {
	const q = `
		DELETE FROM user_recipe_relations
		WHERE user_id = @user_id AND recipe_id = @recipe_id AND kind = @kind`

	args := pgx.NamedArgs{"user_id": rel.UserID, "recipe_id": rel.RecipeID, "kind": string(rel.Kind)}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.RelationRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RelationRepo.Remove: %w", domain.ErrNotFound)
	}
	return nil
}

// Exists reports whether the relation tuple is stored.
func (r *pgRelationRepo) Exists(ctx context.Context, rel domain.UserRecipeRelation) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM user_recipe_relations
			WHERE user_id = @user_id AND recipe_id = @recipe_id AND kind = @kind)`

	args := pgx.NamedArgs{"user_id": rel.UserID, "recipe_id": rel.RecipeID, "kind": string(rel.Kind)}

	var exists bool
	if err := r.db.QueryRow(ctx, q, args).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.RelationRepo.Exists: %w", err)
	}
	return exists, nil
}

// MarkedRecipes returns the subset of recipeIDs related to the user by kind.
func (r *pgRelationRepo) MarkedRecipes(ctx context.Context, userID uuid.UUID, kind domain.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	marked := map[uuid.UUID]bool{}
	if len(recipeIDs) == 0 {
		return marked, nil
	}

	const q = `
		SELECT recipe_id
		FROM user_recipe_relations
		WHERE user_id = @user_id AND kind = @kind AND recipe_id = ANY(@recipe_ids)`

	args := pgx.NamedArgs{"user_id": userID, "kind": string(kind), "recipe_ids": recipeIDs}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.RelationRepo.MarkedRecipes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repo.RelationRepo.MarkedRecipes: scan: %w", err)
		}
		marked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RelationRepo.MarkedRecipes: rows: %w", err)
	}
	return marked, nil
}

// AggregateCart is the shopping-list query: one GROUP BY over every
// ingredient line of every recipe in the user's cart.
func (r *pgRelationRepo) AggregateCart(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error) {
	const q = `
		SELECT i.name, i.measurement_unit, SUM(ri.amount)
		FROM user_recipe_relations rel
		JOIN recipe_ingredients ri ON ri.recipe_id = rel.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE rel.user_id = @user_id AND rel.kind = 'cart'
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name, i.measurement_unit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.RelationRepo.AggregateCart: %w", err)
	}
	defer rows.Close()

	items := []domain.ShoppingListItem{}
	for rows.Next() {
		var item domain.ShoppingListItem
		if err := rows.Scan(&item.Name, &item.MeasurementUnit, &item.Amount); err != nil {
			return nil, fmt.Errorf("repo.RelationRepo.AggregateCart: scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RelationRepo.AggregateCart: rows: %w", err)
	}
	return items, nil
}
