package repositories

import "errors"

// ErrNotFound is returned by every repository when the requested document
// does not exist. Callers detect it with errors.Is.
var ErrNotFound = errors.New("not found")
