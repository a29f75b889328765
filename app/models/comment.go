package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// BeforeCreate assigns an id and creation date when they are missing
func (c *Comment) BeforeCreate() {
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.Date.IsZero() {
		c.Date = Now()
	}
}

// SetPost sets the parent post reference
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.Post = post.ID
	return nil
}

// IsAuthor reports whether user wrote the comment.
func (c *Comment) IsAuthor(user User) bool {
	return user.ID != "" && c.User == user.ID
}

// Now returns the current UTC time at millisecond precision, the resolution
// of a BSON datetime, so a document reads back exactly as it was created.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NewID returns a fresh document identifier in ObjectID hex form.
func NewID() string {
	return bson.NewObjectID().Hex()
}

// IsID reports whether s is a well-formed document identifier.
func IsID(s string) bool {
	_, err := bson.ObjectIDFromHex(s)
	return err == nil
}
