package handler

import (
	"net/http"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/service"
)

// registerRequest is the account-creation payload.
type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Password  string `json:"password" validate:"required,min=8"`
}

// setPasswordRequest is the password-change payload.
type setPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// RegisterUser handles POST /api/users.
func (s *Server) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is required")
		return
	}
	if err := s.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := s.users.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, userToResponse(user, false))
}

// ListUsers handles GET /api/users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	users, total, err := s.users.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	viewerID := currentUser(r)
	data := make([]UserResponse, len(users))
	for i, u := range users {
		subscribed, err := s.subs.IsSubscribed(r.Context(), viewerID, u.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		data[i] = userToResponse(u, subscribed)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       data,
		"pagination": Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// GetUser handles GET /api/users/{id}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	subscribed, err := s.subs.IsSubscribed(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user, subscribed))
}

// GetMe handles GET /api/users/me.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(user, false))
}

// SetPassword handles POST /api/users/set_password.
func (s *Server) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is required")
		return
	}
	if err := s.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.users.SetPassword(r.Context(), currentUser(r), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Subscribe handles POST /api/users/{id}/subscribe.
// The optional ?recipes_limit= query caps the recipe preview in the response.
func (s *Server) Subscribe(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	entry, err := s.subs.Subscribe(r.Context(), currentUser(r), authorID, recipesLimit(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, subscriptionToResponse(entry))
}

// Unsubscribe handles DELETE /api/users/{id}/subscribe.
func (s *Server) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := s.subs.Unsubscribe(r.Context(), currentUser(r), authorID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSubscriptions handles GET /api/users/subscriptions.
func (s *Server) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	entries, total, err := s.subs.ListPaged(r.Context(), currentUser(r), recipesLimit(r), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]SubscriptionResponse, len(entries))
	for i, entry := range entries {
		data[i] = subscriptionToResponse(entry)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       data,
		"pagination": Pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// recipesLimit parses the optional ?recipes_limit= query parameter.
// Absent or negative values mean "no cap".
func recipesLimit(r *http.Request) int {
	if n := queryInt(r, "recipes_limit"); n != nil && *n >= 0 {
		return *n
	}
	return 0
}
