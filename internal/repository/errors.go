package repository

import "errors"

// ErrNotFound distinguishes an absent document from a store failure.
var ErrNotFound = errors.New("document not found")
