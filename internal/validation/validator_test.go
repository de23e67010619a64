package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/validation"
)

type payload struct {
	Email  string `json:"email" validate:"required,email"`
	Amount int    `json:"amount" validate:"gte=1,lte=3000"`
}

func TestValidator_Valid(t *testing.T) {
	v := validation.New()

	err := v.Validate(payload{Email: "chef@example.com", Amount: 10})

	assert.NoError(t, err)
}

func TestValidator_FailuresMapToValidationError(t *testing.T) {
	v := validation.New()

	err := v.Validate(payload{Email: "not-an-email", Amount: 0})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(payload{Amount: 5000})

	require.Error(t, err)
	// Messages must name fields as clients sent them, not as Go struct fields.
	assert.Contains(t, err.Error(), "email is required")
	assert.Contains(t, err.Error(), "amount must be at most 3000")
	assert.NotContains(t, err.Error(), "Email")
}
