// README: Shop service: registration, catalog, stock adjustments.
package shop

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"campuseats/internal/types"
)

var (
	ErrNotFound   = errors.New("shop not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type RegisterCommand struct {
	Name string
}

type AddItemCommand struct {
	ShopID    types.ID
	Name      string
	UnitPrice int64
	Stock     int
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Shop, error) {
	if cmd.Name == "" {
		return nil, ErrBadRequest
	}
	sh := &Shop{ID: types.ID(uuid.NewString()), Name: cmd.Name, CreatedAt: time.Now()}
	if err := s.store.CreateShop(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *Service) AddItem(ctx context.Context, cmd AddItemCommand) (*Item, error) {
	if cmd.ShopID == "" || cmd.Name == "" || cmd.UnitPrice < 0 {
		return nil, ErrBadRequest
	}
	if _, err := s.store.GetShop(ctx, cmd.ShopID); err != nil {
		return nil, err
	}
	it := &Item{
		ID:        types.ID(uuid.NewString()),
		ShopID:    cmd.ShopID,
		Name:      cmd.Name,
		UnitPrice: cmd.UnitPrice,
		Stock:     cmd.Stock,
	}
	if err := s.store.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Shop, error) {
	return s.store.GetShop(ctx, id)
}

func (s *Service) GetItem(ctx context.Context, id types.ID) (*Item, error) {
	return s.store.GetItem(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, shopID types.ID) ([]Item, error) {
	return s.store.ListItems(ctx, shopID)
}

// DecrementStock subtracts qty from an item's stock. Missing items and
// oversells are tolerated; settlement treats stock as best-effort.
func (s *Service) DecrementStock(ctx context.Context, itemID types.ID, qty int) error {
	if qty <= 0 {
		return ErrBadRequest
	}
	return s.store.AddStock(ctx, itemID, -qty)
}
