package repository

import "errors"

// Sentinel errors shared by all repository implementations. Handlers
// translate these into user-facing responses at the route boundary.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateName = errors.New("name already exists")
	ErrValidation    = errors.New("invalid input")
)
