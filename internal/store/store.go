// Package store is the persistence seam. Repositories are defined as
// interfaces per entity so services never depend on a concrete backend;
// the in-memory implementation lives in memory.go and holds state for the
// process lifetime only.
package store

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")
