package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a service error onto an HTTP status and JSON body.
// Unknown errors become 500 and are logged; the body never leaks internals.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{
			Code: "not_found", Message: sentinelMessage(err, domain.ErrNotFound, "resource not found"),
		}})
	case errors.Is(err, domain.ErrDuplicateInSubmission):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code: "duplicate_in_submission", Message: sentinelMessage(err, domain.ErrDuplicateInSubmission, "duplicate element in submission"),
		}})
	case errors.Is(err, domain.ErrSelfReference):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code: "self_reference", Message: sentinelMessage(err, domain.ErrSelfReference, "self reference"),
		}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code: "validation_error", Message: sentinelMessage(err, domain.ErrValidation, "invalid input"),
		}})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: ErrorDetail{
			Code: "conflict", Message: sentinelMessage(err, domain.ErrConflict, "already exists"),
		}})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: ErrorDetail{
			Code: "forbidden", Message: "you do not have permission to perform this action",
		}})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorDetail{
			Code: "invalid_credentials", Message: "invalid credentials",
		}})
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code: "internal_error", Message: "internal server error",
		}})
	}
}

// requestError returns a 422 for requests rejected before reaching the
// service layer (missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
		Code: "validation_error", Message: message,
	}})
}

// sentinelMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.RecipeService.Create: validation error: name is
// required" → "name is required". Falls back when the sentinel has no tail.
func sentinelMessage(err error, sentinel error, fallback string) string {
	msg := err.Error()
	marker := sentinel.Error()

	// The sentinel may appear first ("validation error: name is required")
	// or last ("recipe with this name and tags: already exists").
	if i := strings.Index(msg, marker+": "); i >= 0 {
		return msg[i+len(marker)+2:]
	}
	if strings.HasSuffix(msg, ": "+marker) {
		tail := strings.TrimSuffix(msg, ": "+marker)
		if j := strings.LastIndex(tail, ": "); j >= 0 {
			tail = tail[j+2:]
		}
		if tail != "" && !strings.HasPrefix(tail, "service.") && !strings.HasPrefix(tail, "repo.") {
			return tail
		}
	}
	return fallback
}
