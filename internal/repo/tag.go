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

// TagRepo defines the persistence operations for Tags.
// Tags have an independent lifecycle; linking tags to recipes is handled by
// RecipeRepo as part of the atomic recipe composition.
type TagRepo interface {
	// Create inserts a new tag. Returns domain.ErrConflict if the name or
	// slug is already taken.
	Create(ctx context.Context, tag domain.Tag) (domain.Tag, error)

	// GetByID retrieves a single tag by primary key.
	// Returns domain.ErrNotFound if no tag with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tag, error)

	// List returns all tags ordered by slug.
	List(ctx context.Context) ([]domain.Tag, error)

	// ListByIDs returns the tags matching the given IDs, ordered by slug.
	// Missing IDs are simply absent from the result.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Tag, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

// Create inserts a tag row and returns the full persisted record.
func (r *pgTagRepo) Create(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	const q = `
		INSERT INTO tags (name, slug, color)
		VALUES (@name, @slug, @color)
		RETURNING id, name, slug, color, created_at`

	args := pgx.NamedArgs{"name": tag.Name, "slug": tag.Slug, "color": tag.Color}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTag(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Tag{}, fmt.Errorf("repo.TagRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a tag by primary key.
func (r *pgTagRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tag, error) {
	const q = `SELECT id, name, slug, color, created_at FROM tags WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTag(row)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all tags ordered by slug.
func (r *pgTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	const q = `SELECT id, name, slug, color, created_at FROM tags ORDER BY slug`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	defer rows.Close()

	tags, err := collectTags(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	return tags, nil
}

// ListByIDs returns the tags for the given IDs, ordered by slug.
func (r *pgTagRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Tag, error) {
	const q = `SELECT id, name, slug, color, created_at FROM tags WHERE id = ANY(@ids) ORDER BY slug`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListByIDs: %w", err)
	}
	defer rows.Close()

	tags, err := collectTags(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListByIDs: %w", err)
	}
	return tags, nil
}

// collectTags drains rows into a slice, always returning a non-nil slice.
func collectTags(rows pgx.Rows) ([]domain.Tag, error) {
	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return tags, nil
}

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var (
		t  domain.Tag
		id pgtype.UUID
	)
	err := s.Scan(&id, &t.Name, &t.Slug, &t.Color, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tag{}, domain.ErrNotFound
		}
		return domain.Tag{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
