// README: Settlement engine: post-completion money split across shop, dasher, and platform.
package payment

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"campuseats/internal/modules/dasher"
	"campuseats/internal/modules/order"
	"campuseats/internal/modules/rating"
	"campuseats/internal/modules/shop"
	"campuseats/internal/modules/wallet"
	"campuseats/internal/types"
)

var (
	ErrNotFound       = errors.New("payment not found")
	ErrAlreadySettled = errors.New("order already settled")
	ErrBadRequest     = errors.New("bad request")
)

// Orders is the slice of the lifecycle manager the engine needs. MarkCompleted
// is the idempotency gate: it CASes the order to completed, so exactly one
// settlement can win per order.
type Orders interface {
	Get(ctx context.Context, id types.ID) (*order.Order, error)
	MarkCompleted(ctx context.Context, id types.ID, deliveryFee int64) error
}

type Wallets interface {
	Credit(ctx context.Context, owner types.ID, kind wallet.Kind, amount int64, reason string, orderID types.ID) error
}

type Ratings interface {
	AverageForDasher(ctx context.Context, dasherID types.ID) (float64, error)
}

type Shops interface {
	Get(ctx context.Context, id types.ID) (*shop.Shop, error)
	DecrementStock(ctx context.Context, itemID types.ID, qty int) error
}

type Dashers interface {
	Get(ctx context.Context, id types.ID) (*dasher.Dasher, error)
}

type Service struct {
	store   Store
	orders  Orders
	wallets Wallets
	ratings Ratings
	shops   Shops
	dashers Dashers
}

func NewService(store Store, orders Orders, wallets Wallets, ratings Ratings, shops Shops, dashers Dashers) *Service {
	return &Service{store: store, orders: orders, wallets: wallets, ratings: ratings, shops: shops, dashers: dashers}
}

// ConfirmCommand carries the settled order's figures. Amounts are in centavos.
type ConfirmCommand struct {
	OrderID             types.ID
	DasherID            types.ID
	ShopID              types.ID
	CustomerID          types.ID
	PaymentMethod       order.PaymentMethod
	DeliveryFee         int64
	TotalPrice          int64
	Items               []order.Item
	PreviousNoShowFee   int64
	PreviousNoShowItems int64
}

// Confirm settles a delivered order:
//
//   - gcash: the shop is credited the food cost (total minus carried no-show
//     charges) and the dasher earns the delivery fee minus the platform cut.
//   - cash: the dasher collected food cost and fee in person, so the shop
//     wallet is untouched and the dasher only owes the platform its cut,
//     recorded as a negative credit.
//
// The platform cut is tiered by the dasher's average rating. All record
// checks run before the first mutation: a missing shop or dasher aborts with
// nothing applied, and the completed-status CAS makes retries safe.
func (s *Service) Confirm(ctx context.Context, cmd ConfirmCommand) error {
	if cmd.PaymentMethod != order.PaymentCash && cmd.PaymentMethod != order.PaymentGCash {
		return ErrBadRequest
	}
	if cmd.DeliveryFee < 0 || cmd.TotalPrice < 0 {
		return ErrBadRequest
	}

	o, err := s.orders.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if o.Status == order.StatusCompleted {
		return ErrAlreadySettled
	}
	if _, err := s.shops.Get(ctx, cmd.ShopID); err != nil {
		return err
	}
	if _, err := s.dashers.Get(ctx, cmd.DasherID); err != nil {
		return err
	}

	if err := s.orders.MarkCompleted(ctx, cmd.OrderID, cmd.DeliveryFee); err != nil {
		if errors.Is(err, order.ErrAlreadyCompleted) {
			return ErrAlreadySettled
		}
		return err
	}

	// Stock bookkeeping is best-effort; a miscounted shelf must not hold a
	// settled order hostage.
	for _, it := range cmd.Items {
		if err := s.shops.DecrementStock(ctx, it.ItemID, it.Quantity); err != nil {
			log.Printf("settle %s: decrement stock for item %s: %v", cmd.OrderID, it.ItemID, err)
		}
	}

	// The carried no-show charges are part of this payment but not payment
	// for this order's food: the fee portion goes to the wronged dasher in
	// reconciliation, never to the shop.
	actualFoodCost := cmd.TotalPrice - cmd.PreviousNoShowFee - cmd.PreviousNoShowItems
	if cmd.PaymentMethod == order.PaymentGCash && actualFoodCost > 0 {
		if err := s.wallets.Credit(ctx, cmd.ShopID, wallet.KindShop, actualFoodCost, "food_sale", cmd.OrderID); err != nil {
			return err
		}
	}

	avg, err := s.ratings.AverageForDasher(ctx, cmd.DasherID)
	if err != nil {
		return err
	}
	adminFee := cmd.DeliveryFee * int64(rating.AdminPercent(avg)) / 100
	dasherFee := cmd.DeliveryFee - adminFee

	switch cmd.PaymentMethod {
	case order.PaymentGCash:
		if dasherFee > 0 {
			if err := s.wallets.Credit(ctx, cmd.DasherID, wallet.KindDasher, dasherFee, "delivery_fee", cmd.OrderID); err != nil {
				return err
			}
		}
	case order.PaymentCash:
		if adminFee > 0 {
			if err := s.wallets.Credit(ctx, cmd.DasherID, wallet.KindDasher, -adminFee, "admin_fee", cmd.OrderID); err != nil {
				return err
			}
		}
	}

	return s.store.Append(ctx, &Payment{
		ID:            types.ID(uuid.NewString()),
		OrderID:       cmd.OrderID,
		DasherID:      cmd.DasherID,
		ShopID:        cmd.ShopID,
		CustomerID:    cmd.CustomerID,
		PaymentMethod: string(cmd.PaymentMethod),
		DeliveryFee:   cmd.DeliveryFee,
		TotalPrice:    cmd.TotalPrice,
		CompletedAt:   time.Now(),
	})
}

func (s *Service) GetByOrder(ctx context.Context, orderID types.ID) (*Payment, error) {
	return s.store.GetByOrder(ctx, orderID)
}

func (s *Service) ListByDasher(ctx context.Context, dasherID types.ID) ([]Payment, error) {
	return s.store.ListByDasher(ctx, dasherID)
}

func (s *Service) ListByShop(ctx context.Context, shopID types.ID) ([]Payment, error) {
	return s.store.ListByShop(ctx, shopID)
}
