package domain

import "errors"

// ErrGraphNotFound is returned when a named graph document cannot be found
// in a store.
var ErrGraphNotFound = errors.New("graph not found")
