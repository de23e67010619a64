package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. cooking time out of range, empty recipe name).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicateInSubmission is returned when a single recipe submission repeats
// an element that must be unique within it — the same tag twice, or two
// ingredient lines referencing the same ingredient.
// Handlers should map this to HTTP 422.
var ErrDuplicateInSubmission = errors.New("duplicate in submission")

// ErrConflict is returned when a write would violate a stored uniqueness rule:
// a second favorite/cart entry for the same (user, recipe), a second
// subscription to the same author, an ingredient with an existing
// (name, measurement unit) pair, or a recipe duplicating another recipe by the
// same author with the same name and a shared tag.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("already exists")

// ErrSelfReference is returned when a user attempts to subscribe to themselves.
// Handlers should map this to HTTP 422.
var ErrSelfReference = errors.New("self reference")

// ErrForbidden is returned when an authenticated user attempts an operation on
// a resource they do not own (e.g. editing another author's recipe).
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials is returned by the user service when login fails.
// Handlers should map this to HTTP 401 without disclosing which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")
