// Package model holds the value objects shared by every entity.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Base carries the public identity and creation timestamp of an entity.
// Both are assigned once, at creation, and never change.
type Base struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBase generates a fresh public id stamped with the clock's current
// time, in UTC and truncated to the microsecond precision Postgres stores.
func NewBase(clock clockwork.Clock) Base {
	return Base{
		ID:        uuid.New(),
		CreatedAt: clock.Now().UTC().Truncate(time.Microsecond),
	}
}
