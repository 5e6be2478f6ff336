// README: In-memory dasher store for tests and single-node dev mode.
package dasher

import (
	"context"
	"sort"
	"sync"

	"campuseats/internal/types"
)

type MemoryStore struct {
	mu      sync.Mutex
	dashers map[types.ID]*Dasher
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{dashers: make(map[types.ID]*Dasher)}
}

func (s *MemoryStore) Create(_ context.Context, d *Dasher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *d
	s.dashers[d.ID] = &c
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Dasher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dashers[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *d
	return &c, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id types.ID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dashers[id]
	if !ok {
		return ErrNotFound
	}
	d.Status = status
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Dasher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Dasher, 0, len(s.dashers))
	for _, d := range s.dashers {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
