// README: Dasher rating records.
package rating

import (
	"time"

	"campuseats/internal/types"
)

// Rating is immutable once created; many ratings map to one dasher.
type Rating struct {
	ID        types.ID
	DasherID  types.ID
	OrderID   types.ID
	Rate      int // 1..5
	Comment   string
	CreatedAt time.Time
}
