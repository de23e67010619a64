package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bounds enforced on recipe submissions. Values outside these ranges are
// rejected with ErrValidation before any write.
const (
	MinCookingTime = 1
	MaxCookingTime = 1000
	MinAmount      = 1
	MaxAmount      = 3000
)

// Recipe is the top-level aggregate: a published dish owned by exactly one
// author, with a non-empty tag set and a non-empty list of ingredient lines.
// A recipe never references the same ingredient twice and never carries the
// same tag twice. It is written only as a whole — recipe row, lines, and tag
// links succeed or fail together.
type Recipe struct {
	ID          uuid.UUID
	AuthorID    uuid.UUID
	Name        string
	Text        string
	CookingTime int // minutes, within [MinCookingTime, MaxCookingTime]
	ImageURL    string
	Tags        []Tag
	Ingredients []IngredientLine
	CreatedAt   time.Time // publication date; listings order newest-first
	UpdatedAt   time.Time
}

// TagIDs returns the IDs of the recipe's tags in their stored order.
func (r Recipe) TagIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}

// RecipeFilter narrows a recipe listing. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID    uuid.UUID   // only recipes by this author
	TagSlugs    []string    // recipes carrying any of these tag slugs
	FavoritedBy uuid.UUID   // only recipes favorited by this user
	InCartOf    uuid.UUID   // only recipes in this user's cart
}
