// README: Append-only payment audit records.
package payment

import (
	"time"

	"campuseats/internal/types"
)

// Payment is written once per settled order and never mutated. Amounts are in
// centavos.
type Payment struct {
	ID            types.ID
	OrderID       types.ID
	DasherID      types.ID
	ShopID        types.ID
	CustomerID    types.ID
	PaymentMethod string
	DeliveryFee   int64
	TotalPrice    int64
	CompletedAt   time.Time
}
