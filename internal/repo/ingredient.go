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

// IngredientRepo defines the persistence operations for the ingredient catalog.
type IngredientRepo interface {
	// Create inserts a new ingredient. Returns domain.ErrConflict if the
	// (name, measurement unit) pair already exists.
	Create(ctx context.Context, ing domain.Ingredient) (domain.Ingredient, error)

	// CreateBatch inserts many ingredients in one transaction, all or nothing.
	// Returns domain.ErrConflict if any (name, measurement unit) pair already
	// exists or repeats within the batch.
	CreateBatch(ctx context.Context, ings []domain.Ingredient) error

	// GetByID retrieves a single ingredient by primary key.
	// Returns domain.ErrNotFound if no ingredient with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Ingredient, error)

	// List returns all ingredients whose name starts with prefix, ordered by
	// name. If prefix is empty, all ingredients are returned.
	List(ctx context.Context, prefix string) ([]domain.Ingredient, error)

	// ListByIDs returns the ingredients matching the given IDs, in no
	// particular order. Missing IDs are simply absent from the result.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Ingredient, error)
}

// pgIngredientRepo is the Postgres implementation of IngredientRepo.
type pgIngredientRepo struct {
	db db
}

// NewIngredientRepo constructs an IngredientRepo backed by the provided db connection.
func NewIngredientRepo(db db) IngredientRepo {
	return &pgIngredientRepo{db: db}
}

// Create inserts a single catalog entry.
func (r *pgIngredientRepo) Create(ctx context.Context, ing domain.Ingredient) (domain.Ingredient, error) {
	const q = `
		INSERT INTO ingredients (name, measurement_unit)
		VALUES (@name, @measurement_unit)
		RETURNING id, name, measurement_unit`

	args := pgx.NamedArgs{"name": ing.Name, "measurement_unit": ing.MeasurementUnit}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanIngredient(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Ingredient{}, fmt.Errorf("repo.IngredientRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Ingredient{}, fmt.Errorf("repo.IngredientRepo.Create: %w", err)
	}
	return result, nil
}

// CreateBatch bulk-inserts catalog entries inside one transaction.
func (r *pgIngredientRepo) CreateBatch(ctx context.Context, ings []domain.Ingredient) error {
	if len(ings) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.IngredientRepo.CreateBatch: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck — rollback after commit is a no-op

	const q = `INSERT INTO ingredients (name, measurement_unit) VALUES (@name, @measurement_unit)`

	batch := &pgx.Batch{}
	for _, ing := range ings {
		batch.Queue(q, pgx.NamedArgs{"name": ing.Name, "measurement_unit": ing.MeasurementUnit})
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repo.IngredientRepo.CreateBatch: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.IngredientRepo.CreateBatch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.IngredientRepo.CreateBatch: commit: %w", err)
	}
	return nil
}

// GetByID retrieves an ingredient by primary key.
func (r *pgIngredientRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Ingredient, error) {
	const q = `SELECT id, name, measurement_unit FROM ingredients WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanIngredient(row)
	if err != nil {
		return domain.Ingredient{}, fmt.Errorf("repo.IngredientRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns ingredients whose name starts with prefix, ordered by name.
// Pass prefix="" to return the whole catalog.
func (r *pgIngredientRepo) List(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	const q = `
		SELECT id, name, measurement_unit
		FROM ingredients
		WHERE name LIKE @prefix || '%'
		ORDER BY name, measurement_unit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("repo.IngredientRepo.List: %w", err)
	}
	defer rows.Close()

	ings := []domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.IngredientRepo.List: scan: %w", err)
		}
		ings = append(ings, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.IngredientRepo.List: rows: %w", err)
	}
	return ings, nil
}

// ListByIDs returns the catalog entries for the given IDs.
func (r *pgIngredientRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Ingredient, error) {
	const q = `SELECT id, name, measurement_unit FROM ingredients WHERE id = ANY(@ids)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.IngredientRepo.ListByIDs: %w", err)
	}
	defer rows.Close()

	ings := []domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.IngredientRepo.ListByIDs: scan: %w", err)
		}
		ings = append(ings, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.IngredientRepo.ListByIDs: rows: %w", err)
	}
	return ings, nil
}

// scanIngredient maps a single database row into a domain.Ingredient.
func scanIngredient(s scanner) (domain.Ingredient, error) {
	var (
		ing domain.Ingredient
		id  pgtype.UUID
	)
	err := s.Scan(&id, &ing.Name, &ing.MeasurementUnit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Ingredient{}, domain.ErrNotFound
		}
		return domain.Ingredient{}, err
	}
	ing.ID = uuid.UUID(id.Bytes)
	return ing, nil
}
