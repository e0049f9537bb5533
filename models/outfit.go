package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Outfit is a saved outfit document referencing at most one wardrobe
// item per category.
type Outfit struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"user_id" json:"userId"`
	Tops        *primitive.ObjectID `bson:"tops,omitempty" json:"tops,omitempty"`
	Bottoms     *primitive.ObjectID `bson:"bottoms,omitempty" json:"bottoms,omitempty"`
	Shoes       *primitive.ObjectID `bson:"shoes,omitempty" json:"shoes,omitempty"`
	Outerwear   *primitive.ObjectID `bson:"outerwear,omitempty" json:"outerwear,omitempty"`
	Accessories *primitive.ObjectID `bson:"accessories,omitempty" json:"accessories,omitempty"`
}
