// README: Shop store contract; postgres and in-memory implementations.
package shop

import (
	"context"

	"campuseats/internal/types"
)

type Store interface {
	CreateShop(ctx context.Context, sh *Shop) error
	GetShop(ctx context.Context, id types.ID) (*Shop, error)
	CreateItem(ctx context.Context, it *Item) error
	GetItem(ctx context.Context, id types.ID) (*Item, error)
	ListItems(ctx context.Context, shopID types.ID) ([]Item, error)
	// AddStock adds delta to the item's stock (negative to decrement).
	AddStock(ctx context.Context, itemID types.ID, delta int) error
}
