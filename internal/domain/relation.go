package domain

import "github.com/google/uuid"

// RelationKind discriminates the two user↔recipe relations that share one
// storage shape: favorites and the shopping cart. A (user, recipe) pair is
// unique per kind — a user favorites or carts a recipe at most once.
type RelationKind string

const (
	RelationFavorite RelationKind = "favorite"
	RelationCart     RelationKind = "cart"
)

// Valid reports whether k is one of the two known relation kinds.
func (k RelationKind) Valid() bool {
	return k == RelationFavorite || k == RelationCart
}

// UserRecipeRelation is one favorite or cart entry.
type UserRecipeRelation struct {
	UserID   uuid.UUID
	RecipeID uuid.UUID
	Kind     RelationKind
}

// ShoppingListItem is one aggregated line of a user's shopping list: the
// summed amount of a single (ingredient name, measurement unit) group across
// every recipe in the user's cart.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Amount          int
}
