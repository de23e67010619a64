package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dezz1er/foodgram-project-react/internal/auth"
	"github.com/dezz1er/foodgram-project-react/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := auth.NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := m.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenManager_Parse_Expired(t *testing.T) {
	m := auth.NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue(uuid.New())
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenManager_Parse_WrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager("secret-a", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenManager_Parse_Garbage(t *testing.T) {
	m := auth.NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.Parse(token)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "token %q", token)
	}
}
