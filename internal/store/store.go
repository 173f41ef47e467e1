// Package store provides database access methods for all Inkwell entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import "errors"

// ErrConflict is returned by guarded updates when the row changed under
// the caller. The transition must be retried from a fresh load or given
// up, never silently overwritten.
var ErrConflict = errors.New("store: concurrent modification detected")
