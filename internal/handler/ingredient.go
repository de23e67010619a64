package handler

import (
	"net/http"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

// ListIngredients handles GET /api/ingredients.
// The optional ?name= query parameter filters by name prefix.
func (s *Server) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ings, err := s.ingreds.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]IngredientResponse, len(ings))
	for i, ing := range ings {
		data[i] = ingredientToResponse(ing)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetIngredient handles GET /api/ingredients/{id}.
func (s *Server) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	ing, err := s.ingreds.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ingredientToResponse(ing))
}
