// Package uuid wraps github.com/google/uuid with time-ordered (v7) identifiers as the default.
package uuid

import (
	"github.com/google/uuid"
)

// UUID is an alias of github.com/google/uuid.UUID.
type UUID = uuid.UUID

// NewRandom returns a new UUIDv7 and any error encountered during generation.
func NewRandom() (UUID, error) {
	return uuid.NewV7()
}
