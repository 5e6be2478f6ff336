// README: In-memory shop store for tests and single-node dev mode.
package shop

import (
	"context"
	"sort"
	"sync"

	"campuseats/internal/types"
)

type MemoryStore struct {
	mu    sync.Mutex
	shops map[types.ID]*Shop
	items map[types.ID]*Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shops: make(map[types.ID]*Shop),
		items: make(map[types.ID]*Item),
	}
}

func (s *MemoryStore) CreateShop(_ context.Context, sh *Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *sh
	s.shops[sh.ID] = &c
	return nil
}

func (s *MemoryStore) GetShop(_ context.Context, id types.ID) (*Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shops[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *sh
	return &c, nil
}

func (s *MemoryStore) CreateItem(_ context.Context, it *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *it
	s.items[it.ID] = &c
	return nil
}

func (s *MemoryStore) GetItem(_ context.Context, id types.ID) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *it
	return &c, nil
}

func (s *MemoryStore) ListItems(_ context.Context, shopID types.ID) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Item
	for _, it := range s.items {
		if it.ShopID == shopID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) AddStock(_ context.Context, itemID types.ID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[itemID]
	if !ok {
		return ErrNotFound
	}
	it.Stock += delta
	return nil
}
