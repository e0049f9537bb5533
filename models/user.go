package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OutfitSlot maps a wardrobe category to the item id equipped in it.
// At most one item is equipped per category.
type OutfitSlot map[string]primitive.ObjectID

// User represents a registered user. Each user carries three
// independent outfit slots.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // Password is not returned in JSON
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	Outfit1   OutfitSlot         `bson:"outfit1" json:"outfit1"`
	Outfit2   OutfitSlot         `bson:"outfit2" json:"outfit2"`
	Outfit3   OutfitSlot         `bson:"outfit3" json:"outfit3"`
}

// OutfitSlotFor returns the slot for outfit number "1", "2" or "3",
// allocating an empty map for slots never written. Unknown numbers
// return nil; callers validate the number first.
func (u *User) OutfitSlotFor(outfitNumber string) OutfitSlot {
	var slot OutfitSlot
	switch outfitNumber {
	case "1":
		slot = u.Outfit1
	case "2":
		slot = u.Outfit2
	case "3":
		slot = u.Outfit3
	default:
		return nil
	}
	if slot == nil {
		slot = OutfitSlot{}
	}
	return slot
}

// OutfitFieldName returns the document field holding the given outfit
// slot, e.g. "outfit2".
func OutfitFieldName(outfitNumber string) string {
	return "outfit" + outfitNumber
}
