package repository

import "errors"

// ErrDuplicate wraps unique-constraint violations so callers need not know
// about gorm's translated errors.
var ErrDuplicate = errors.New("duplicate record")
