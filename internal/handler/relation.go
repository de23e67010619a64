package handler

import (
	"net/http"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

// addRelation marks a recipe for the authenticated user and returns the
// compact recipe shape. Shared by favorite and shopping-cart endpoints.
func (s *Server) addRelation(w http.ResponseWriter, r *http.Request, kind domain.RelationKind) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	recipe, err := s.rels.Add(r.Context(), kind, currentUser(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, compactRecipe(recipe))
}

// removeRelation clears a mark for the authenticated user.
func (s *Server) removeRelation(w http.ResponseWriter, r *http.Request, kind domain.RelationKind) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := s.rels.Remove(r.Context(), kind, currentUser(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddFavorite handles POST /api/recipes/{id}/favorite.
func (s *Server) AddFavorite(w http.ResponseWriter, r *http.Request) {
	s.addRelation(w, r, domain.RelationFavorite)
}

// RemoveFavorite handles DELETE /api/recipes/{id}/favorite.
func (s *Server) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	s.removeRelation(w, r, domain.RelationFavorite)
}

// AddToCart handles POST /api/recipes/{id}/shopping_cart.
func (s *Server) AddToCart(w http.ResponseWriter, r *http.Request) {
	s.addRelation(w, r, domain.RelationCart)
}

// RemoveFromCart handles DELETE /api/recipes/{id}/shopping_cart.
func (s *Server) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	s.removeRelation(w, r, domain.RelationCart)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart.
// The aggregated list is served as a plain-text attachment.
func (s *Server) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	list, err := s.shopping.Build(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(list))
}
