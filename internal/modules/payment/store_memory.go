// README: In-memory payment store for tests and single-node dev mode.
package payment

import (
	"context"
	"sync"

	"campuseats/internal/types"
)

type MemoryStore struct {
	mu       sync.Mutex
	payments []Payment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, p *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, *p)
	return nil
}

func (s *MemoryStore) GetByOrder(_ context.Context, orderID types.ID) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].OrderID == orderID {
			p := s.payments[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListByDasher(_ context.Context, dasherID types.ID) ([]Payment, error) {
	return s.filter(func(p Payment) bool { return p.DasherID == dasherID }), nil
}

func (s *MemoryStore) ListByShop(_ context.Context, shopID types.ID) ([]Payment, error) {
	return s.filter(func(p Payment) bool { return p.ShopID == shopID }), nil
}

func (s *MemoryStore) filter(match func(Payment) bool) []Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Payment
	for i := len(s.payments) - 1; i >= 0; i-- {
		if match(s.payments[i]) {
			out = append(out, s.payments[i])
		}
	}
	return out
}
