// Package store provides the data-access layer over MongoDB. Each entity
// gets its own interface so handlers receive an injected store handle
// instead of reaching for a shared client.
package store

import "errors"

// ErrNotFound is returned when a document id does not match any record.
var ErrNotFound = errors.New("store: not found")
