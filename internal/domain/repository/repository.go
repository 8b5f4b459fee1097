package repository

import "errors"

// Sentinel errors shared by all repository implementations. The application
// layer maps these onto the API error taxonomy.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
