// README: In-memory wallet store for tests and single-node dev mode.
package wallet

import (
	"context"
	"sync"

	"campuseats/internal/types"
)

type accountKey struct {
	owner types.ID
	kind  Kind
}

type MemoryStore struct {
	mu       sync.Mutex
	accounts map[accountKey]*Account
	entries  []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[accountKey]*Account)}
}

func (s *MemoryStore) Ensure(_ context.Context, owner types.ID, kind Kind) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := accountKey{owner, kind}
	a, ok := s.accounts[k]
	if !ok {
		a = &Account{OwnerID: owner, Kind: kind}
		s.accounts[k] = a
	}
	snap := *a
	return &snap, nil
}

func (s *MemoryStore) Apply(_ context.Context, owner types.ID, kind Kind, version int, e *Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountKey{owner, kind}]
	if !ok || a.Version != version {
		return false, nil
	}
	a.Balance += e.Amount
	a.Version++
	s.entries = append(s.entries, *e)
	return true, nil
}

func (s *MemoryStore) Balance(_ context.Context, owner types.ID, kind Kind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[accountKey{owner, kind}]; ok {
		return a.Balance, nil
	}
	return 0, nil
}

func (s *MemoryStore) ListEntries(_ context.Context, owner types.ID, kind Kind) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	// Newest first to match the SQL store.
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.OwnerID == owner && e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}
