package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCategory(t *testing.T) {
	for _, c := range ValidCategories {
		assert.True(t, IsValidCategory(c), "category %q", c)
	}

	assert.False(t, IsValidCategory("hats"))
	assert.False(t, IsValidCategory("Tops"))
	assert.False(t, IsValidCategory(""))
}
