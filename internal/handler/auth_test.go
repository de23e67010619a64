package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

func TestLogin(t *testing.T) {
	m := defaultMocks()
	var gotEmail, gotPassword string
	m.users.login = func(_ context.Context, email, password string) (string, error) {
		gotEmail, gotPassword = email, password
		return "token-123", nil
	}

	body := `{"email":"vasya@example.com","password":"s3cret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/login", strings.NewReader(body))
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "vasya@example.com", gotEmail)
	assert.Equal(t, "s3cret-pass", gotPassword)
	assert.JSONEq(t, `{"auth_token":"token-123"}`, rec.Body.String())
}

func TestLogin_WrongCredentials(t *testing.T) {
	m := defaultMocks()
	m.users.login = func(_ context.Context, _, _ string) (string, error) {
		return "", fmt.Errorf("service.UserService.Login: %w", domain.ErrInvalidCredentials)
	}

	body := `{"email":"vasya@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/login", strings.NewReader(body))
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"invalid_credentials"`)
}

func TestLogin_MalformedBody(t *testing.T) {
	m := defaultMocks()
	m.users.login = func(_ context.Context, _, _ string) (string, error) {
		t.Fatal("login must not be called for a malformed body")
		return "", nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/login", strings.NewReader("{not json"))
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"validation_error"`)
}

func TestLogin_InvalidEmail(t *testing.T) {
	m := defaultMocks()
	m.users.login = func(_ context.Context, _, _ string) (string, error) {
		t.Fatal("login must not be called for an invalid payload")
		return "", nil
	}

	body := `{"email":"not-an-email","password":"s3cret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/login", strings.NewReader(body))
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"validation_error"`)
}

func TestLogout(t *testing.T) {
	m := defaultMocks()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/logout", nil)
	rec := do(t, m.router(uuid.New()), req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLogout_Anonymous(t *testing.T) {
	m := defaultMocks()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/logout", nil)
	rec := do(t, m.router(uuid.Nil), req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthz(t *testing.T) {
	m := defaultMocks()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
