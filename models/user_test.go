package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOutfitSlotFor(t *testing.T) {
	itemID := primitive.NewObjectID()
	user := &User{
		Outfit2: OutfitSlot{"tops": itemID},
	}

	t.Run("existing slot", func(t *testing.T) {
		slot := user.OutfitSlotFor("2")
		assert.Equal(t, itemID, slot["tops"])
	})

	t.Run("nil slot becomes empty map", func(t *testing.T) {
		slot := user.OutfitSlotFor("1")
		assert.NotNil(t, slot)
		assert.Empty(t, slot)
	})

	t.Run("unknown number", func(t *testing.T) {
		assert.Nil(t, user.OutfitSlotFor("4"))
		assert.Nil(t, user.OutfitSlotFor(""))
	})
}

func TestOutfitFieldName(t *testing.T) {
	assert.Equal(t, "outfit1", OutfitFieldName("1"))
	assert.Equal(t, "outfit3", OutfitFieldName("3"))
}
