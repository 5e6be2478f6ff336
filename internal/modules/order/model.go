// README: Order aggregate, status vocabulary, and the status collapse table.
package order

import (
	"strings"
	"time"

	"campuseats/internal/types"
)

type Status string

// Status tags are stable wire values shared with the clients. The "active"
// prefix is load-bearing: it is what the one-active-order guards and the
// ongoing/past queries match on, so "completed", "no-show" and the
// "cancelled_*" family must never gain it.
const (
	StatusWaitingForShop         Status = "active_waiting_for_shop"
	StatusWaitingForDasher       Status = "active_waiting_for_dasher"
	StatusToShop                 Status = "active_toShop"
	StatusPreparing              Status = "active_preparing"
	StatusOnTheWay               Status = "active_onTheWay"
	StatusPickedUp               Status = "active_pickedUp"
	StatusWaitingForConfirmation Status = "active_waiting_for_confirmation"
	StatusShopCancelConfirmation Status = "active_waiting_for_shop_cancel_confirmation"
	StatusCancelConfirmation     Status = "active_waiting_for_cancel_confirmation"
	StatusCompleted              Status = "completed"
	StatusNoShow                 Status = "no-show"
	StatusNoShowResolved         Status = "no-show-resolved"
	StatusCancelledByCustomer    Status = "cancelled_by_customer"
	StatusCancelledByShop        Status = "cancelled_by_shop"
	StatusCancelledByDasher      Status = "cancelled_by_dasher"

	// StatusShopConfirmed is request-only: shops send it to approve an order,
	// but it is never stored. See Collapse.
	StatusShopConfirmed Status = "active_shop_confirmed"
)

const ActivePrefix = "active"

func (s Status) IsActive() bool {
	return strings.HasPrefix(string(s), ActivePrefix)
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusNoShow, StatusNoShowResolved,
		StatusCancelledByCustomer, StatusCancelledByShop, StatusCancelledByDasher:
		return true
	}
	return false
}

type collapseKey struct {
	current   Status
	requested Status
}

// collapseTable maps (current, requested) pairs to the status actually stored.
// Requests not present in the table are stored verbatim; the manager does not
// validate transition legality beyond this rewrite.
var collapseTable = map[collapseKey]Status{
	{StatusWaitingForShop, StatusShopConfirmed}: StatusWaitingForDasher,
}

// Collapse returns the status to store when a caller requests a status change
// on an order currently in the given state.
func Collapse(current, requested Status) Status {
	if to, ok := collapseTable[collapseKey{current, requested}]; ok {
		return to
	}
	return requested
}

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGCash PaymentMethod = "gcash"
)

type Item struct {
	ItemID    types.ID
	Name      string
	UnitPrice int64
	Quantity  int
}

// Order amounts are in centavos.
type Order struct {
	ID            types.ID
	CustomerID    types.ID
	ShopID        types.ID
	DasherID      *types.ID
	Status        Status
	StatusVersion int
	Items         []Item
	DeliveryFee   int64
	TotalPrice    int64
	PaymentMethod PaymentMethod

	// Carried charges from the customer's most recent unresolved no-show
	// order. Both default to 0 and are excluded from the shop's food-cost
	// credit at settlement.
	PreviousNoShowFee   int64
	PreviousNoShowItems int64

	DeliveryProofURI string
	NoShowProofURI   string

	CreatedAt   time.Time
	CompletedAt *time.Time
}

// StatusEvent is an append-only audit row for every status change.
type StatusEvent struct {
	ID         int64
	OrderID    types.ID
	FromStatus Status
	ToStatus   Status
	ActorType  string
	ActorID    *types.ID
	CreatedAt  time.Time
}
