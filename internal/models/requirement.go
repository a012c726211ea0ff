package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxRequirementImages caps the images attached to a single post.
const MaxRequirementImages = 3

// Requirement is a flatmate requirement post.
type Requirement struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Images     []string           `bson:"images" json:"images"`
	Price      float64            `bson:"price" json:"price"`
	Furnishing string             `bson:"furnishing" json:"furnishing"`
	State      string             `bson:"state" json:"state"`
	City       string             `bson:"city" json:"city"`
	Location   string             `bson:"location" json:"location"`
	Prefs      []string           `bson:"prefs" json:"prefs"`
	Gender     string             `bson:"gender" json:"gender"`
	Notes      string             `bson:"notes" json:"notes"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// RequirementForm holds the text fields of the post-requirement form.
// Price stays a string until the service coerces it.
type RequirementForm struct {
	Price      string   `form:"price"`
	Furnishing string   `form:"furnishing"`
	State      string   `form:"state"`
	City       string   `form:"city"`
	Location   string   `form:"location"`
	Prefs      []string `form:"prefs"`
	Gender     string   `form:"gender"`
	Notes      string   `form:"notes"`
}
