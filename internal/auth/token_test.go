package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshCentner/ShadowMatchPro/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour)

	token, err := tm.Generate(42, "jo@seek.com.au")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "jo@seek.com.au", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenWrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour)
	other := auth.NewTokenManager("other_secret", time.Hour)

	token, err := tm.Generate(42, "jo@seek.com.au")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", -time.Minute)

	token, err := tm.Generate(42, "jo@seek.com.au")
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour)

	_, err := tm.Validate("not-a-token")
	assert.Error(t, err)
}
