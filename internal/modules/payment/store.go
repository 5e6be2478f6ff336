// README: Payment store contract.
package payment

import (
	"context"

	"campuseats/internal/types"
)

type Store interface {
	Append(ctx context.Context, p *Payment) error
	GetByOrder(ctx context.Context, orderID types.ID) (*Payment, error)
	ListByDasher(ctx context.Context, dasherID types.ID) ([]Payment, error)
	ListByShop(ctx context.Context, shopID types.ID) ([]Payment, error)
}
