// README: Order store contract; postgres and in-memory implementations satisfy it.
package order

import (
	"context"

	"campuseats/internal/types"
)

// Store is the persistence contract for orders. List results are newest-first.
// Status mutations compare-and-swap on (current status, status version) so
// concurrent writers for the same order cannot both win.
type Store interface {
	// Create inserts the order. Inserting an active order for a customer who
	// already has one fails with ErrActiveOrder; the check happens inside the
	// store's critical section, so concurrent placements cannot both land.
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id types.ID) (*Order, error)

	// UpdateStatus CASes the order from (from, version) to `to`. A non-nil
	// dasherID is stored alongside the transition.
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, dasherID *types.ID) (bool, error)
	// ClearDasher CASes the order to `to` and removes its dasher.
	ClearDasher(ctx context.Context, id types.ID, from, to Status, version int) (bool, error)
	// Complete CASes the order to completed and stamps the final delivery fee.
	Complete(ctx context.Context, id types.ID, from Status, version int, deliveryFee int64) (bool, error)

	SetProofs(ctx context.Context, id types.ID, deliveryProofURI, noShowProofURI string) error
	Delete(ctx context.Context, id types.ID) error

	ListByCustomer(ctx context.Context, customerID types.ID) ([]*Order, error)
	ListByDasher(ctx context.Context, dasherID types.ID) ([]*Order, error)
	ListByStatusPrefix(ctx context.Context, prefix string) ([]*Order, error)
	ListByStatusAndCustomer(ctx context.Context, status Status, customerID types.ID) ([]*Order, error)
	// ListOngoing returns orders that have a dasher and are past shop approval.
	ListOngoing(ctx context.Context) ([]*Order, error)
	// ListPast returns orders whose status does not start with prefix.
	ListPast(ctx context.Context, prefix string) ([]*Order, error)

	HasActiveByCustomer(ctx context.Context, customerID types.ID) (bool, error)
	HasActiveByDasher(ctx context.Context, dasherID types.ID) (bool, error)

	// ResolveNoShows flips every no-show order of the customer to
	// no-show-resolved and reports how many rows changed.
	ResolveNoShows(ctx context.Context, customerID types.ID) (int, error)

	AppendEvent(ctx context.Context, e *StatusEvent) error
}
