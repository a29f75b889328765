package services

import (
	"errors"
	"fmt"
)

// Error kinds returned by the services. Anything else is an internal error.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrPostNotFound    = fmt.Errorf("post %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
	ErrUnauthorized    = errors.New("user not authorized")
)
