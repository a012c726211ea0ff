package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"fullname" json:"fullname"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Age          int                `bson:"age" json:"age"`
	Gender       string             `bson:"gender" json:"gender"`
	Occupation   string             `bson:"occupation" json:"occupation"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Terms        bool               `bson:"terms" json:"terms"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Signup is the body of the signup form. Terms is the raw checkbox value;
// browsers send "on" when it is ticked.
type Signup struct {
	FullName   string `form:"fullname"`
	Email      string `form:"email"`
	Phone      string `form:"phone"`
	Age        int    `form:"age"`
	Gender     string `form:"gender"`
	Occupation string `form:"occupation"`
	Password   string `form:"password"`
	Confirm    string `form:"confirm"`
	Terms      string `form:"terms"`
}

func (s *Signup) TermsAccepted() bool {
	return s.Terms == "on"
}

type Login struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// UserSummary is the slice of a user returned to the client after login.
type UserSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID.Hex(),
		FullName: u.FullName,
		Email:    u.Email,
	}
}
