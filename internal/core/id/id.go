// Package id generates the identifiers of stored resources.
package id

import (
	"github.com/google/uuid"
)

// ID identifies a stored resource.
type ID = uuid.UUID

// New returns a time-ordered UUIDv7, so ids sort by creation time.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
