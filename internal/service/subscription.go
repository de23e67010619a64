package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/repo"
)

// SubscriptionService implements author subscriptions.
type SubscriptionService struct {
	subs    repo.SubscriptionRepo
	users   repo.UserRepo
	recipes repo.RecipeRepo
}

// NewSubscriptionService constructs a SubscriptionService backed by the provided repos.
func NewSubscriptionService(subs repo.SubscriptionRepo, users repo.UserRepo, recipes repo.RecipeRepo) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users, recipes: recipes}
}

// Subscribe stores a subscription from userID to authorID and returns the
// author entry with a recipe preview. Returns domain.ErrSelfReference when
// userID == authorID, domain.ErrNotFound when the author does not exist, and
// domain.ErrConflict when the subscription already exists.
// recipesLimit caps the preview; <= 0 means no cap.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (domain.SubscribedAuthor, error) {
	if userID == authorID {
		return domain.SubscribedAuthor{}, fmt.Errorf("service.SubscriptionService.Subscribe: cannot subscribe to yourself: %w", domain.ErrSelfReference)
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return domain.SubscribedAuthor{}, fmt.Errorf("service.SubscriptionService.Subscribe: %w", err)
	}

	sub := domain.Subscription{UserID: userID, AuthorID: authorID}

	exists, err := s.subs.Exists(ctx, sub)
	if err != nil {
		return domain.SubscribedAuthor{}, fmt.Errorf("service.SubscriptionService.Subscribe: %w", err)
	}
	if exists {
		return domain.SubscribedAuthor{}, fmt.Errorf("service.SubscriptionService.Subscribe: already subscribed: %w", domain.ErrConflict)
	}

	if err := s.subs.Add(ctx, sub); err != nil {
		return domain.SubscribedAuthor{}, fmt.Errorf("service.SubscriptionService.Subscribe: %w", err)
	}

	entry, err := s.authorEntry(ctx, author, recipesLimit)
	if err != nil {
		return domain.SubscribedAuthor{}, fmt.Errorf("service.SubscriptionService.Subscribe: %w", err)
	}
	return entry, nil
}

// Unsubscribe deletes the subscription.
// Returns domain.ErrNotFound if it is not stored.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	sub := domain.Subscription{UserID: userID, AuthorID: authorID}
	if err := s.subs.Remove(ctx, sub); err != nil {
		return fmt.Errorf("service.SubscriptionService.Unsubscribe: %w", err)
	}
	return nil
}

// IsSubscribed reports whether userID follows authorID.
// Anonymous callers (userID == uuid.Nil) are never subscribed.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	exists, err := s.subs.Exists(ctx, domain.Subscription{UserID: userID, AuthorID: authorID})
	if err != nil {
		return false, fmt.Errorf("service.SubscriptionService.IsSubscribed: %w", err)
	}
	return exists, nil
}

// ListPaged returns one page of the user's subscribed authors, each with a
// recipe preview capped at recipesLimit (<= 0 means no cap), plus the total.
func (s *SubscriptionService) ListPaged(ctx context.Context, userID uuid.UUID, recipesLimit int, p domain.PaginationParams) ([]domain.SubscribedAuthor, int64, error) {
	authors, total, err := s.subs.ListAuthorsPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.SubscriptionService.ListPaged: %w", err)
	}

	entries := make([]domain.SubscribedAuthor, 0, len(authors))
	for _, author := range authors {
		entry, err := s.authorEntry(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, fmt.Errorf("service.SubscriptionService.ListPaged: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, total, nil
}

// authorEntry assembles one subscription listing entry for an author.
func (s *SubscriptionService) authorEntry(ctx context.Context, author domain.User, recipesLimit int) (domain.SubscribedAuthor, error) {
	recipes, err := s.recipes.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.SubscribedAuthor{}, fmt.Errorf("author recipes: %w", err)
	}
	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return domain.SubscribedAuthor{}, fmt.Errorf("author recipe count: %w", err)
	}
	return domain.SubscribedAuthor{Author: author, Recipes: recipes, RecipesCount: int(count)}, nil
}
