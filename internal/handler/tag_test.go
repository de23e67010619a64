package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

func TestListTags(t *testing.T) {
	m := defaultMocks()
	m.tags.list = func(_ context.Context) ([]domain.Tag, error) {
		return []domain.Tag{
			{ID: uuid.New(), Name: "Breakfast", Slug: "breakfast", Color: "#E26C2D"},
			{ID: uuid.New(), Name: "Dinner", Slug: "dinner", Color: "#49B64E"},
		}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tags/", nil)
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "breakfast", resp[0].Slug)
	assert.Equal(t, "#49B64E", resp[1].Color)
}

func TestGetTag(t *testing.T) {
	m := defaultMocks()
	tag := domain.Tag{ID: uuid.New(), Name: "Dinner", Slug: "dinner", Color: "#49B64E"}
	m.tags.getByID = func(_ context.Context, id uuid.UUID) (domain.Tag, error) {
		assert.Equal(t, tag.ID, id)
		return tag, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tags/"+tag.ID.String(), nil)
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dinner"`)
}

func TestGetTag_NotFound(t *testing.T) {
	m := defaultMocks()
	m.tags.getByID = func(_ context.Context, _ uuid.UUID) (domain.Tag, error) {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByID: %w", domain.ErrNotFound)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tags/"+uuid.NewString(), nil)
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_found"`)
}

func TestGetTag_BadID(t *testing.T) {
	m := defaultMocks()
	req := httptest.NewRequest(http.MethodGet, "/api/tags/42", nil)
	rec := do(t, m.router(uuid.Nil), req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
