// README: Dasher profile.
package dasher

import (
	"time"

	"campuseats/internal/types"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

type Dasher struct {
	ID        types.ID
	Name      string
	Status    Status
	CreatedAt time.Time
}
