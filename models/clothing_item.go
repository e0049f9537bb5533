package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidCategories lists the wardrobe categories in their canonical
// order. Category inference in the scraper tests keyword groups in this
// same order.
var ValidCategories = []string{"tops", "bottoms", "shoes", "outerwear", "accessories"}

// IsValidCategory reports whether c is one of the wardrobe categories.
func IsValidCategory(c string) bool {
	for _, valid := range ValidCategories {
		if c == valid {
			return true
		}
	}
	return false
}

// WardrobeItem represents a single clothing item owned by a user.
// Color is stored lower-cased and size upper-cased; the handlers apply
// both at write time.
type WardrobeItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Category    string             `bson:"category" json:"category"`
	Name        string             `bson:"name" json:"name"`
	Color       string             `bson:"color" json:"color"`
	Size        string             `bson:"size" json:"size"`
	Price       float64            `bson:"price" json:"price"`
	Brand       string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Material    string             `bson:"material,omitempty" json:"material,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageData   string             `bson:"image_data,omitempty" json:"image_data,omitempty"`
	ItemURL     string             `bson:"item_url,omitempty" json:"item_url,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
