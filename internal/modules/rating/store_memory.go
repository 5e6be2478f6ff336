// README: In-memory rating store for tests and single-node dev mode.
package rating

import (
	"context"
	"sync"

	"campuseats/internal/types"
)

type MemoryStore struct {
	mu      sync.Mutex
	ratings []Rating
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, r *Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings = append(s.ratings, *r)
	return nil
}

func (s *MemoryStore) ListByDasher(_ context.Context, dasherID types.ID) ([]Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Rating
	for i := len(s.ratings) - 1; i >= 0; i-- {
		if s.ratings[i].DasherID == dasherID {
			out = append(out, s.ratings[i])
		}
	}
	return out, nil
}
