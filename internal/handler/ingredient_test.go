package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

func TestListIngredients(t *testing.T) {
	m := defaultMocks()
	var gotPrefix string
	m.ingreds.list = func(_ context.Context, prefix string) ([]domain.Ingredient, error) {
		gotPrefix = prefix
		return []domain.Ingredient{
			{ID: uuid.New(), Name: "salt", MeasurementUnit: "g"},
			{ID: uuid.New(), Name: "salmon", MeasurementUnit: "g"},
		}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ingredients/?name=sal", nil)
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sal", gotPrefix)

	var resp []struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "salt", resp[0].Name)
	assert.Equal(t, "g", resp[0].MeasurementUnit)
}

func TestListIngredients_Empty(t *testing.T) {
	m := defaultMocks()
	m.ingreds.list = func(_ context.Context, _ string) ([]domain.Ingredient, error) {
		return []domain.Ingredient{}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ingredients/", nil)
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetIngredient(t *testing.T) {
	m := defaultMocks()
	ing := domain.Ingredient{ID: uuid.New(), Name: "flour", MeasurementUnit: "kg"}
	m.ingreds.getByID = func(_ context.Context, id uuid.UUID) (domain.Ingredient, error) {
		assert.Equal(t, ing.ID, id)
		return ing, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ingredients/"+ing.ID.String(), nil)
	rec := do(t, m.router(uuid.Nil), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"flour"`)
}

func TestGetIngredient_BadID(t *testing.T) {
	m := defaultMocks()
	req := httptest.NewRequest(http.MethodGet, "/api/ingredients/not-a-uuid", nil)
	rec := do(t, m.router(uuid.Nil), req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
