// README: Event-to-message dispatcher with the status message table.
package notify

import (
	"context"
	"log"

	"campuseats/internal/types"
)

// Event is the outcome of a state transition, decoupled from the lifecycle
// package so the state machine stays testable without a messaging dependency.
type Event struct {
	OrderID    types.ID
	CustomerID types.ID
	ShopID     types.ID
	DasherID   types.ID
	Status     string
}

// statusMessages is the fixed status → customer message table. Unknown
// statuses fall back to a generic message and are never an error.
var statusMessages = map[string]string{
	"active_waiting_for_shop":                     "Order placed! Waiting for the shop to confirm.",
	"active_waiting_for_dasher":                   "Shop confirmed your order. Looking for a dasher.",
	"active_toShop":                               "A dasher accepted your order and is heading to the shop.",
	"active_preparing":                            "The shop is preparing your order.",
	"active_onTheWay":                             "Your order is on the way!",
	"active_pickedUp":                             "Your dasher picked up the order.",
	"active_waiting_for_confirmation":             "Your order has arrived. Please confirm the delivery.",
	"active_waiting_for_shop_cancel_confirmation": "Cancellation requested. Waiting for the shop to confirm.",
	"active_waiting_for_cancel_confirmation":      "Cancellation requested. Waiting for confirmation.",
	"completed":                                   "Order completed. Thank you for ordering with CampusEats!",
	"no-show":                                     "We couldn't reach you for your delivery. The delivery fee will be added to your next order.",
	"no-show-resolved":                            "Your previous missed delivery has been settled.",
	"cancelled_by_customer":                       "Your order has been cancelled.",
	"cancelled_by_shop":                           "The shop cancelled your order.",
	"cancelled_by_dasher":                         "Your dasher cancelled the delivery. We're finding a new one.",
}

const genericMessage = "Order status updated."

// MessageFor returns the customer-facing message for a status tag.
func MessageFor(status string) string {
	if m, ok := statusMessages[status]; ok {
		return m
	}
	return genericMessage
}

// Dispatcher turns transition events into notifications. Failures are logged
// and swallowed: notification delivery never fails a state change.
type Dispatcher struct {
	n Notifier
}

func NewDispatcher(n Notifier) *Dispatcher {
	return &Dispatcher{n: n}
}

func (d *Dispatcher) OrderStatus(ctx context.Context, ev Event) {
	msg := MessageFor(ev.Status)
	if err := d.n.SendToUser(ctx, ev.CustomerID, msg); err != nil {
		log.Printf("notify customer %s for order %s: %v", ev.CustomerID, ev.OrderID, err)
	}
	if ev.DasherID != "" {
		if err := d.n.SendToUser(ctx, ev.DasherID, msg); err != nil {
			log.Printf("notify dasher %s for order %s: %v", ev.DasherID, ev.OrderID, err)
		}
	}
}
