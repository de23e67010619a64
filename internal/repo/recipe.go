package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

// RecipeRepo defines the persistence operations for Recipes and their child
// rows (ingredient lines and tag links). Create and Update are the atomic
// composition writes: the recipe row, its lines, and its tag links succeed or
// fail as one transaction — a failed write never leaves a partial recipe.
type RecipeRepo interface {
	// Create inserts the recipe row, bulk-inserts its ingredient lines, and
	// attaches the full tag set in one transaction. The returned recipe has
	// tags and lines fully loaded.
	Create(ctx context.Context, recipe domain.Recipe, tagIDs []uuid.UUID) (domain.Recipe, error)

	// Update overwrites the scalar fields, replaces the tag set wholesale,
	// and deletes-then-reinserts all ingredient lines in one transaction.
	// Returns domain.ErrNotFound if the recipe does not exist.
	Update(ctx context.Context, recipe domain.Recipe, tagIDs []uuid.UUID) (domain.Recipe, error)

	// GetByID retrieves a recipe with its tags and ingredient lines loaded.
	// Returns domain.ErrNotFound if no recipe with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Recipe, error)

	// ListPaged returns one page of recipes matching the filter, newest first,
	// with tags and lines loaded, plus the total count of matching recipes.
	ListPaged(ctx context.Context, f domain.RecipeFilter, p domain.PaginationParams) ([]domain.Recipe, int64, error)

	// ListByAuthor returns up to limit of the author's recipes, newest first,
	// with tags and lines loaded. limit <= 0 means no limit.
	ListByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]domain.Recipe, error)

	// CountByAuthor returns the number of recipes published by the author.
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)

	// Delete removes a recipe by ID; child rows cascade.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByAuthorNameAndTags reports whether the author already has a
	// recipe with the given name carrying at least one of the given tags.
	// This is the creation-only duplicate-recipe policy.
	ExistsByAuthorNameAndTags(ctx context.Context, authorID uuid.UUID, name string, tagIDs []uuid.UUID) (bool, error)
}

// pgRecipeRepo is the Postgres implementation of RecipeRepo.
type pgRecipeRepo struct {
	db db
}

// NewRecipeRepo constructs a RecipeRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx — Begin then opens
// a savepoint, so composition writes stay atomic inside the test transaction.
func NewRecipeRepo(db db) RecipeRepo {
	return &pgRecipeRepo{db: db}
}

const recipeColumns = `id, author_id, name, text, cooking_time, image_url, created_at, updated_at`

// Create performs the atomic recipe composition write.
func (r *pgRecipeRepo) Create(ctx context.Context, recipe domain.Recipe, tagIDs []uuid.UUID) (domain.Recipe, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck — rollback after commit is a no-op

	const q = `
		INSERT INTO recipes (author_id, name, text, cooking_time, image_url)
		VALUES (@author_id, @name, @text, @cooking_time, @image_url)
		RETURNING ` + recipeColumns

	args := pgx.NamedArgs{
		"author_id":    recipe.AuthorID,
		"name":         recipe.Name,
		"text":         recipe.Text,
		"cooking_time": recipe.CookingTime,
		"image_url":    recipe.ImageURL,
	}

	created, err := scanRecipe(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Create: %w", translateConflict(err))
	}

	if err := insertChildRows(ctx, tx, created.ID, recipe.Ingredients, tagIDs); err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Create: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Create: commit: %w", err)
	}

	return r.GetByID(ctx, created.ID)
}

// Update overwrites scalars and replaces all child rows wholesale.
// "Replace, don't diff" trades write amplification for simplicity and avoids
// partial-update ordering bugs.
func (r *pgRecipeRepo) Update(ctx context.Context, recipe domain.Recipe, tagIDs []uuid.UUID) (domain.Recipe, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Update: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const q = `
		UPDATE recipes
		SET name         = @name,
		    text         = @text,
		    cooking_time = @cooking_time,
		    image_url    = @image_url,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + recipeColumns

	args := pgx.NamedArgs{
		"id":           recipe.ID,
		"name":         recipe.Name,
		"text":         recipe.Text,
		"cooking_time": recipe.CookingTime,
		"image_url":    recipe.ImageURL,
	}

	updated, err := scanRecipe(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Update: %w", translateConflict(err))
	}

	const clearTags = `DELETE FROM recipe_tags WHERE recipe_id = @recipe_id`
	if _, err := tx.Exec(ctx, clearTags, pgx.NamedArgs{"recipe_id": updated.ID}); err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Update: clear tags: %w", err)
	}

	const clearLines = `DELETE FROM recipe_ingredients WHERE recipe_id = @recipe_id`
	if _, err := tx.Exec(ctx, clearLines, pgx.NamedArgs{"recipe_id": updated.ID}); err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Update: clear lines: %w", err)
	}

	if err := insertChildRows(ctx, tx, updated.ID, recipe.Ingredients, tagIDs); err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Update: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Update: commit: %w", err)
	}

	return r.GetByID(ctx, updated.ID)
}

// insertChildRows bulk-inserts the ingredient lines and tag links for a recipe
// within the caller's transaction.
func insertChildRows(ctx context.Context, tx pgx.Tx, recipeID uuid.UUID, lines []domain.IngredientLine, tagIDs []uuid.UUID) error {
	const lineQ = `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
		VALUES (@recipe_id, @ingredient_id, @amount)`
	const tagQ = `
		INSERT INTO recipe_tags (recipe_id, tag_id)
		VALUES (@recipe_id, @tag_id)`

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(lineQ, pgx.NamedArgs{
			"recipe_id":     recipeID,
			"ingredient_id": line.IngredientID,
			"amount":        line.Amount,
		})
	}
	for _, tagID := range tagIDs {
		batch.Queue(tagQ, pgx.NamedArgs{"recipe_id": recipeID, "tag_id": tagID})
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert child rows: %w", translateConflict(err))
	}
	return nil
}

// GetByID retrieves a recipe with tags and ingredient lines loaded.
func (r *pgRecipeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Recipe, error) {
	const q = `SELECT ` + recipeColumns + ` FROM recipes WHERE id = @id`

	recipe, err := scanRecipe(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.GetByID: %w", err)
	}

	if err := r.loadChildren(ctx, []domain.Recipe{recipe}, func(loaded []domain.Recipe) {
		recipe = loaded[0]
	}); err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.GetByID: %w", err)
	}
	return recipe, nil
}

// ListPaged returns one page of recipes matching the filter, newest first.
func (r *pgRecipeRepo) ListPaged(ctx context.Context, f domain.RecipeFilter, p domain.PaginationParams) ([]domain.Recipe, int64, error) {
	where, args := buildRecipeFilter(f)

	countQ := `SELECT count(*) FROM recipes r ` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.RecipeRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + prefixedRecipeColumns + ` FROM recipes r ` + where + `
		ORDER BY r.created_at DESC, r.id
		LIMIT @limit OFFSET @offset`
	args["limit"] = p.Limit
	args["offset"] = p.Offset()

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.RecipeRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.RecipeRepo.ListPaged: scan: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.RecipeRepo.ListPaged: rows: %w", err)
	}

	if err := r.loadChildren(ctx, recipes, func(loaded []domain.Recipe) {
		recipes = loaded
	}); err != nil {
		return nil, 0, fmt.Errorf("repo.RecipeRepo.ListPaged: %w", err)
	}
	return recipes, total, nil
}

// prefixedRecipeColumns is recipeColumns qualified with the "r" alias for
// queries that join or filter through other tables.
const prefixedRecipeColumns = `r.id, r.author_id, r.name, r.text, r.cooking_time, r.image_url, r.created_at, r.updated_at`

// buildRecipeFilter translates a domain.RecipeFilter into a WHERE clause and
// its named arguments. Each condition is an EXISTS subquery so the outer
// query never multiplies rows through joins.
func buildRecipeFilter(f domain.RecipeFilter) (string, pgx.NamedArgs) {
	conds := []string{}
	args := pgx.NamedArgs{}

	if f.AuthorID != uuid.Nil {
		conds = append(conds, `r.author_id = @author_id`)
		args["author_id"] = f.AuthorID
	}
	if len(f.TagSlugs) > 0 {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug = ANY(@tag_slugs))`)
		args["tag_slugs"] = f.TagSlugs
	}
	if f.FavoritedBy != uuid.Nil {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM user_recipe_relations rel
			WHERE rel.recipe_id = r.id AND rel.user_id = @favorited_by AND rel.kind = 'favorite')`)
		args["favorited_by"] = f.FavoritedBy
	}
	if f.InCartOf != uuid.Nil {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM user_recipe_relations rel
			WHERE rel.recipe_id = r.id AND rel.user_id = @in_cart_of AND rel.kind = 'cart')`)
		args["in_cart_of"] = f.InCartOf
	}

	if len(conds) == 0 {
		return "", args
	}
	where := "WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

// ListByAuthor returns up to limit recipes by the author, newest first.
func (r *pgRecipeRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]domain.Recipe, error) {
	q := `SELECT ` + recipeColumns + ` FROM recipes WHERE author_id = @author_id ORDER BY created_at DESC, id`
	args := pgx.NamedArgs{"author_id": authorID}
	if limit > 0 {
		q += ` LIMIT @limit`
		args["limit"] = limit
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.RecipeRepo.ListByAuthor: %w", err)
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RecipeRepo.ListByAuthor: scan: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RecipeRepo.ListByAuthor: rows: %w", err)
	}

	if err := r.loadChildren(ctx, recipes, func(loaded []domain.Recipe) {
		recipes = loaded
	}); err != nil {
		return nil, fmt.Errorf("repo.RecipeRepo.ListByAuthor: %w", err)
	}
	return recipes, nil
}

// CountByAuthor returns the author's total recipe count.
func (r *pgRecipeRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM recipes WHERE author_id = @author_id`

	var total int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"author_id": authorID}).Scan(&total); err != nil {
		return 0, fmt.Errorf("repo.RecipeRepo.CountByAuthor: %w", err)
	}
	return total, nil
}

// Delete removes a recipe by primary key. Lines, tag links, favorites, and
// cart entries cascade via the schema.
func (r *pgRecipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM recipes WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.RecipeRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RecipeRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ExistsByAuthorNameAndTags implements the creation-only duplicate policy:
// same author, same name, at least one shared tag.
func (r *pgRecipeRepo) ExistsByAuthorNameAndTags(ctx context.Context, authorID uuid.UUID, name string, tagIDs []uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM recipes r
			JOIN recipe_tags rt ON rt.recipe_id = r.id
			WHERE r.author_id = @author_id
			  AND r.name = @name
			  AND rt.tag_id = ANY(@tag_ids))`

	args := pgx.NamedArgs{"author_id": authorID, "name": name, "tag_ids": tagIDs}

	var exists bool
	if err := r.db.QueryRow(ctx, q, args).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.RecipeRepo.ExistsByAuthorNameAndTags: %w", err)
	}
	return exists, nil
}

// loadChildren fills Tags and Ingredients for every recipe in one pass using
// two ANY(recipe_ids) queries, then hands the loaded slice back via assign.
func (r *pgRecipeRepo) loadChildren(ctx context.Context, recipes []domain.Recipe, assign func([]domain.Recipe)) error {
	if len(recipes) == 0 {
		assign(recipes)
		return nil
	}

	ids := make([]uuid.UUID, len(recipes))
	index := make(map[uuid.UUID]int, len(recipes))
	for i, recipe := range recipes {
		ids[i] = recipe.ID
		index[recipe.ID] = i
		recipes[i].Tags = []domain.Tag{}
		recipes[i].Ingredients = []domain.IngredientLine{}
	}

	const tagQ = `
		SELECT rt.recipe_id, t.id, t.name, t.slug, t.color, t.created_at
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY(@ids)
		ORDER BY t.slug`

	tagRows, err := r.db.Query(ctx, tagQ, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var (
			recipeID pgtype.UUID
			tagID    pgtype.UUID
			t        domain.Tag
		)
		if err := tagRows.Scan(&recipeID, &tagID, &t.Name, &t.Slug, &t.Color, &t.CreatedAt); err != nil {
			return fmt.Errorf("load tags: scan: %w", err)
		}
		t.ID = uuid.UUID(tagID.Bytes)
		i := index[uuid.UUID(recipeID.Bytes)]
		recipes[i].Tags = append(recipes[i].Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("load tags: rows: %w", err)
	}

	const lineQ = `
		SELECT ri.recipe_id, ri.ingredient_id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY(@ids)
		ORDER BY i.name`

	lineRows, err := r.db.Query(ctx, lineQ, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("load lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var (
			recipeID     pgtype.UUID
			ingredientID pgtype.UUID
			line         domain.IngredientLine
		)
		if err := lineRows.Scan(&recipeID, &ingredientID, &line.Name, &line.MeasurementUnit, &line.Amount); err != nil {
			return fmt.Errorf("load lines: scan: %w", err)
		}
		line.IngredientID = uuid.UUID(ingredientID.Bytes)
		i := index[uuid.UUID(recipeID.Bytes)]
		recipes[i].Ingredients = append(recipes[i].Ingredients, line)
	}
	if err := lineRows.Err(); err != nil {
		return fmt.Errorf("load lines: rows: %w", err)
	}

	assign(recipes)
	return nil
}

// translateConflict rewrites unique-constraint violations into
// domain.ErrConflict so races past the service pre-checks never surface as
// raw storage failures.
func translateConflict(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// scanRecipe maps a single database row into a domain.Recipe without children.
func scanRecipe(s scanner) (domain.Recipe, error) {
	var (
		recipe   domain.Recipe
		id       pgtype.UUID
		authorID pgtype.UUID
	)
	err := s.Scan(&id, &authorID, &recipe.Name, &recipe.Text, &recipe.CookingTime,
		&recipe.ImageURL, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Recipe{}, domain.ErrNotFound
		}
		return domain.Recipe{}, err
	}
	recipe.ID = uuid.UUID(id.Bytes)
	recipe.AuthorID = uuid.UUID(authorID.Bytes)
	return recipe, nil
}
