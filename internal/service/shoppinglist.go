package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/repo"
)

// shoppingListHeader is the fixed first line of every shopping list.
// The rendered format is part of the external contract and must not change.
const shoppingListHeader = "Shopping list:"

// ShoppingListService renders a user's aggregated shopping list: every
// ingredient line of every recipe in the cart, grouped by (name, unit) with
// amounts summed, one text line per group.
type ShoppingListService struct {
	relations repo.RelationRepo
}

// NewShoppingListService constructs a ShoppingListService backed by the provided repo.
func NewShoppingListService(relations repo.RelationRepo) *ShoppingListService {
	return &ShoppingListService{relations: relations}
}

// Build returns the shopping-list text for the user. Groups are ordered by
// ingredient name (then unit) so output is reproducible for a fixed database
// state. An empty cart yields the header line alone.
func (s *ShoppingListService) Build(ctx context.Context, userID uuid.UUID) (string, error) {
	items, err := s.relations.AggregateCart(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("service.ShoppingListService.Build: %w", err)
	}

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, shoppingListHeader)
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s (%s) — %d", item.Name, item.MeasurementUnit, item.Amount))
	}
	return strings.Join(lines, "\n"), nil
}
