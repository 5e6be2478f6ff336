// README: Shop profile and item catalog.
package shop

import (
	"time"

	"campuseats/internal/types"
)

type Shop struct {
	ID        types.ID
	Name      string
	CreatedAt time.Time
}

// Item prices are in centavos. Stock may go negative: settlement decrements
// best-effort and leaves reconciling oversells to the shop.
type Item struct {
	ID        types.ID
	ShopID    types.ID
	Name      string
	UnitPrice int64
	Stock     int
}
