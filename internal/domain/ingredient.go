package domain

import "github.com/google/uuid"

// Ingredient is a catalog entry identified by the (Name, MeasurementUnit)
// pair — "sugar"/"g" and "sugar"/"tbsp" are two distinct ingredients.
// Ingredients referenced by a recipe line are treated as immutable.
type Ingredient struct {
	ID              uuid.UUID
	Name            string
	MeasurementUnit string
}

// IngredientLine is one (ingredient, amount) pairing attached to a recipe.
// Name and MeasurementUnit are denormalized copies filled in on reads so
// callers never need a second ingredient lookup.
// Amount must be within [1, 3000].
type IngredientLine struct {
	IngredientID    uuid.UUID
	Name            string
	MeasurementUnit string
	Amount          int
}
