package repository

import "errors"

// ErrNotFound is returned when the addressed user or thought does not exist.
var ErrNotFound = errors.New("document not found")
