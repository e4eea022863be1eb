package database

import "errors"

// ErrNotFound is returned when no comparison has the requested ID.
var ErrNotFound = errors.New("comparison not found")
