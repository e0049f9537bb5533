package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartfit-app/wardrobe-backend/config"
)

func withJWTSecret(t *testing.T, secret string) {
	t.Helper()
	old := config.JWTSecret
	config.JWTSecret = secret
	t.Cleanup(func() { config.JWTSecret = old })
}

func TestGenerateAndValidateToken(t *testing.T) {
	withJWTSecret(t, "test-secret")

	token, err := GenerateToken("64b0c1f2e4a5d6b7c8d9e0f1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64b0c1f2e4a5d6b7c8d9e0f1", userID)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	withJWTSecret(t, "")

	_, err := GenerateToken("user")
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	withJWTSecret(t, "test-secret")

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	withJWTSecret(t, "secret-one")
	token, err := GenerateToken("user")
	require.NoError(t, err)

	config.JWTSecret = "secret-two"
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
