package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// User is the authenticated caller attached to a request by the auth gate.
type User struct {
	ID string `json:"id"`
}

// Post is a parent document holding comment ids, newest first.
type Post struct {
	ID       string    `json:"id" bson:"_id" validate:"required,len=24,hexadecimal"`
	User     string    `json:"user" bson:"user" validate:"required"`
	Text     string    `json:"text" bson:"text" validate:"required"`
	Comments []string  `json:"comments" bson:"comments" validate:"dive,len=24,hexadecimal"`
	Date     time.Time `json:"date" bson:"date" validate:"required"`
}

// Comment is a piece of text written by User on Post.
type Comment struct {
	ID   string    `json:"id" bson:"_id" validate:"required,len=24,hexadecimal"`
	Text string    `json:"text" bson:"text"`
	User string    `json:"user" bson:"user" validate:"required"`
	Post string    `json:"post" bson:"post" validate:"required,len=24,hexadecimal"`
	Date time.Time `json:"date" bson:"date" validate:"required"`
}
