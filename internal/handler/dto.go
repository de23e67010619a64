package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

// --- response types ---------------------------------------------------------

// Pagination echoes the page parameters plus the total number of matches.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// UserResponse is the public shape of an account, with the viewer-dependent
// is_subscribed flag.
type UserResponse struct {
	Email        string    `json:"email"`
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// TagResponse is the wire shape of a tag.
type TagResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

// IngredientResponse is the wire shape of a catalog entry.
type IngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// RecipeIngredientResponse is one ingredient line on a recipe.
type RecipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// RecipeResponse is the full wire shape of a recipe, with nested tags, the
// author, and the viewer-dependent favorite/cart flags.
type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// CompactRecipeResponse is the short recipe shape used by favorite/cart
// responses and subscription previews.
type CompactRecipeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionResponse is one entry of the subscriptions listing: the author
// plus a preview of their recipes.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []CompactRecipeResponse `json:"recipes"`
	RecipesCount int                     `json:"recipes_count"`
}

// --- conversions ------------------------------------------------------------

func userToResponse(u domain.User, isSubscribed bool) UserResponse {
	return UserResponse{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

func tagToResponse(t domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func ingredientToResponse(i domain.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

func compactRecipe(r domain.Recipe) CompactRecipeResponse {
	return CompactRecipeResponse{ID: r.ID, Name: r.Name, Image: r.ImageURL, CookingTime: r.CookingTime}
}

func subscriptionToResponse(entry domain.SubscribedAuthor) SubscriptionResponse {
	recipes := make([]CompactRecipeResponse, len(entry.Recipes))
	for i, recipe := range entry.Recipes {
		recipes[i] = compactRecipe(recipe)
	}
	return SubscriptionResponse{
		UserResponse: userToResponse(entry.Author, true),
		Recipes:      recipes,
		RecipesCount: entry.RecipesCount,
	}
}

// recipesToResponses assembles the full recipe DTOs for the viewer: nested
// tags and lines from the loaded recipes, favorite/cart flags in two batch
// queries, and each distinct author fetched and checked once.
func (s *Server) recipesToResponses(ctx context.Context, viewerID uuid.UUID, recipes []domain.Recipe) ([]RecipeResponse, error) {
	ids := make([]uuid.UUID, len(recipes))
	for i, recipe := range recipes {
		ids[i] = recipe.ID
	}

	favorited, err := s.rels.Marked(ctx, viewerID, domain.RelationFavorite, ids)
	if err != nil {
		return nil, fmt.Errorf("favorite flags: %w", err)
	}
	inCart, err := s.rels.Marked(ctx, viewerID, domain.RelationCart, ids)
	if err != nil {
		return nil, fmt.Errorf("cart flags: %w", err)
	}

	authors := map[uuid.UUID]UserResponse{}

	out := make([]RecipeResponse, len(recipes))
	for i, recipe := range recipes {
		author, ok := authors[recipe.AuthorID]
		if !ok {
			u, err := s.users.GetByID(ctx, recipe.AuthorID)
			if err != nil {
				return nil, fmt.Errorf("recipe author: %w", err)
			}
			subscribed, err := s.subs.IsSubscribed(ctx, viewerID, recipe.AuthorID)
			if err != nil {
				return nil, fmt.Errorf("author subscription flag: %w", err)
			}
			author = userToResponse(u, subscribed)
			authors[recipe.AuthorID] = author
		}

		tags := make([]TagResponse, len(recipe.Tags))
		for j, t := range recipe.Tags {
			tags[j] = tagToResponse(t)
		}
		lines := make([]RecipeIngredientResponse, len(recipe.Ingredients))
		for j, line := range recipe.Ingredients {
			lines[j] = RecipeIngredientResponse{
				ID:              line.IngredientID,
				Name:            line.Name,
				MeasurementUnit: line.MeasurementUnit,
				Amount:          line.Amount,
			}
		}

		out[i] = RecipeResponse{
			ID:               recipe.ID,
			Tags:             tags,
			Author:           author,
			Ingredients:      lines,
			IsFavorited:      favorited[recipe.ID],
			IsInShoppingCart: inCart[recipe.ID],
			Name:             recipe.Name,
			Image:            recipe.ImageURL,
			Text:             recipe.Text,
			CookingTime:      recipe.CookingTime,
			CreatedAt:        recipe.CreatedAt,
		}
	}
	return out, nil
}
