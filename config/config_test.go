package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("PORT", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("JWT_SECRET", "")

	LoadConfig()

	assert.Equal(t, "mongodb://localhost:27017/", MongoURI)
	assert.Equal(t, "3000", Port)
	assert.Empty(t, GoogleAPIKey)
	assert.Empty(t, JWTSecret)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017/")
	t.Setenv("PORT", "8080")
	t.Setenv("GOOGLE_API_KEY", "key-123")
	t.Setenv("JWT_SECRET", "secret-123")

	LoadConfig()

	assert.Equal(t, "mongodb://db:27017/", MongoURI)
	assert.Equal(t, "8080", Port)
	assert.Equal(t, "key-123", GoogleAPIKey)
	assert.Equal(t, "secret-123", JWTSecret)
}
