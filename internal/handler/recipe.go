package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/service"
)

// recipeRequest is the recipe submission payload: the full composition every
// time, for both create and update.
type recipeRequest struct {
	Ingredients []recipeLineRequest `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []uuid.UUID         `json:"tags" validate:"required,min=1"`
	Image       string              `json:"image"`
	Name        string              `json:"name" validate:"required,max=200"`
	Text        string              `json:"text" validate:"required"`
	CookingTime int                 `json:"cooking_time" validate:"required,gte=1,lte=1000"`
}

// recipeLineRequest is one ingredient line of a submission.
type recipeLineRequest struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Amount int       `json:"amount" validate:"required,gte=1,lte=3000"`
}

// toInput converts the request into a service.RecipeInput, persisting the
// base64 image payload (if any) and carrying its URL instead.
func (s *Server) toInput(req recipeRequest) (service.RecipeInput, error) {
	input := service.RecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
	}
	for _, line := range req.Ingredients {
		input.Ingredients = append(input.Ingredients, domain.IngredientLine{
			IngredientID: line.ID,
			Amount:       line.Amount,
		})
	}
	if req.Image != "" {
		url, err := s.images.SaveDataURL(req.Image)
		if err != nil {
			return service.RecipeInput{}, err
		}
		input.ImageURL = url
	}
	return input, nil
}

// CreateRecipe handles POST /api/recipes.
func (s *Server) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is required")
		return
	}
	if err := s.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	input, err := s.toInput(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.recipes.Create(r.Context(), currentUser(r), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.recipesToResponses(r.Context(), currentUser(r), []domain.Recipe{created})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp[0])
}

// ListRecipes handles GET /api/recipes.
// Filters: ?author=<id>, ?tags=<slug> (repeatable), ?is_favorited=1,
// ?is_in_shopping_cart=1 (the last two apply to the authenticated viewer).
func (s *Server) ListRecipes(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	viewerID := currentUser(r)

	filter := domain.RecipeFilter{TagSlugs: r.URL.Query()["tags"]}
	if raw := r.URL.Query().Get("author"); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			requestError(w, "author must be a valid id")
			return
		}
		filter.AuthorID = authorID
	}
	if r.URL.Query().Get("is_favorited") == "1" && viewerID != uuid.Nil {
		filter.FavoritedBy = viewerID
	}
	if r.URL.Query().Get("is_in_shopping_cart") == "1" && viewerID != uuid.Nil {
		filter.InCartOf = viewerID
	}

	recipes, total, err := s.recipes.ListPaged(r.Context(), filter, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data, err := s.recipesToResponses(r.Context(), viewerID, recipes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       data,
		"pagination": Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// GetRecipe handles GET /api/recipes/{id}.
func (s *Server) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	recipe, err := s.recipes.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.recipesToResponses(r.Context(), currentUser(r), []domain.Recipe{recipe})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp[0])
}

// UpdateRecipe handles PATCH /api/recipes/{id}.
// The body carries the whole composition; tags and ingredient lines are
// replaced wholesale. Only the author may update.
func (s *Server) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	var req recipeRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is required")
		return
	}
	if err := s.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	input, err := s.toInput(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := s.recipes.Update(r.Context(), currentUser(r), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.recipesToResponses(r.Context(), currentUser(r), []domain.Recipe{updated})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp[0])
}

// DeleteRecipe handles DELETE /api/recipes/{id}. Only the author may delete.
func (s *Server) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := s.recipes.Delete(r.Context(), currentUser(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
