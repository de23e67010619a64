package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

// SubscriptionRepo defines the persistence operations for author subscriptions.
type SubscriptionRepo interface {
	// Add inserts a subscription. Returns domain.ErrConflict if the
	// (user, author) pair already exists; the primary key and the
	// user <> author schema check are the final authority.
	Add(ctx context.Context, sub domain.Subscription) error

	// Remove deletes a subscription.
	// Returns domain.ErrNotFound if no such subscription exists.
	Remove(ctx context.Context, sub domain.Subscription) error

	// Exists reports whether the (user, author) pair is stored.
	Exists(ctx context.Context, sub domain.Subscription) (bool, error)

	// ListAuthorsPaged returns one page of the authors the user is
	// subscribed to, ordered by username, plus the total count.
	ListAuthorsPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.User, int64, error)
}

// pgSubscriptionRepo is the Postgres implementation of SubscriptionRepo.
type pgSubscriptionRepo struct {
	db db
}

// NewSubscriptionRepo constructs a SubscriptionRepo backed by the provided db connection.
func NewSubscriptionRepo(db db) SubscriptionRepo {
	return &pgSubscriptionRepo{db: db}
}

// Add inserts a subscription row.
func (r *pgSubscriptionRepo) Add(ctx context.Context, sub domain.Subscription) error {
	const q = `
		INSERT INTO subscriptions (user_id, author_id)
		VALUES (@user_id, @author_id)`

	args := pgx.NamedArgs{"user_id": sub.UserID, "author_id": sub.AuthorID}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repo.SubscriptionRepo.Add: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.SubscriptionRepo.Add: %w", err)
	}
	return nil
}

// Remove deletes a subscription row.
func (r *pgSubscriptionRepo) Remove(ctx context.Context, sub domain.Subscription) error {
	const q = `
		DELETE FROM subscriptions
		WHERE user_id = @user_id AND author_id = @author_id`

	args := pgx.NamedArgs{"user_id": sub.UserID, "author_id": sub.AuthorID}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.SubscriptionRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SubscriptionRepo.Remove: %w", domain.ErrNotFound)
	}
	return nil
}

// Exists reports whether the subscription pair is stored.
func (r *pgSubscriptionRepo) Exists(ctx context.Context, sub domain.Subscription) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions
			WHERE user_id = @user_id AND author_id = @author_id)`

	args := pgx.NamedArgs{"user_id": sub.UserID, "author_id": sub.AuthorID}

	var exists bool
	if err := r.db.QueryRow(ctx, q, args).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.SubscriptionRepo.Exists: %w", err)
	}
	return exists, nil
}

// ListAuthorsPaged returns one page of subscribed-to authors ordered by username.
func (r *pgSubscriptionRepo) ListAuthorsPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.User, int64, error) {
	const countQ = `SELECT count(*) FROM subscriptions WHERE user_id = @user_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.SubscriptionRepo.ListAuthorsPaged: count: %w", err)
	}

	const q = `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.author_id
		WHERE s.user_id = @user_id
		ORDER BY u.username
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{"user_id": userID, "limit": p.Limit, "offset": p.Offset()}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.SubscriptionRepo.ListAuthorsPaged: %w", err)
	}
	defer rows.Close()

	authors := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.SubscriptionRepo.ListAuthorsPaged: scan: %w", err)
		}
		authors = append(authors, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.SubscriptionRepo.ListAuthorsPaged: rows: %w", err)
	}
	return authors, total, nil
}
