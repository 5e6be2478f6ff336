// README: In-memory order store for tests and single-node dev mode.
package order

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campuseats/internal/types"
)

// MemoryStore keeps orders in a map guarded by one mutex, which gives it the
// same linearizability the SQL store gets from conditional UPDATEs.
type MemoryStore struct {
	mu     sync.Mutex
	orders map[types.ID]*Order
	seq    map[types.ID]int64
	events []StatusEvent
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders: make(map[types.ID]*Order),
		seq:    make(map[types.ID]int64),
	}
}

func (s *MemoryStore) Create(_ context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.Status.IsActive() {
		for _, existing := range s.orders {
			if existing.CustomerID == o.CustomerID && existing.Status.IsActive() {
				return ErrActiveOrder
			}
		}
	}
	s.nextID++
	s.seq[o.ID] = s.nextID
	s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(o), nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int, dasherID *types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != from || o.StatusVersion != version {
		return false, nil
	}
	o.Status = to
	o.StatusVersion++
	if dasherID != nil {
		d := *dasherID
		o.DasherID = &d
	}
	if to == StatusCompleted && o.CompletedAt == nil {
		now := time.Now()
		o.CompletedAt = &now
	}
	return true, nil
}

func (s *MemoryStore) ClearDasher(_ context.Context, id types.ID, from, to Status, version int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != from || o.StatusVersion != version {
		return false, nil
	}
	o.Status = to
	o.StatusVersion++
	o.DasherID = nil
	return true, nil
}

func (s *MemoryStore) Complete(_ context.Context, id types.ID, from Status, version int, deliveryFee int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != from || o.StatusVersion != version {
		return false, nil
	}
	o.Status = StatusCompleted
	o.StatusVersion++
	o.DeliveryFee = deliveryFee
	now := time.Now()
	o.CompletedAt = &now
	return true, nil
}

func (s *MemoryStore) SetProofs(_ context.Context, id types.ID, deliveryProofURI, noShowProofURI string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return ErrNotFound
	}
	if deliveryProofURI != "" {
		o.DeliveryProofURI = deliveryProofURI
	}
	if noShowProofURI != "" {
		o.NoShowProofURI = noShowProofURI
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return ErrNotFound
	}
	delete(s.orders, id)
	delete(s.seq, id)
	return nil
}

func (s *MemoryStore) ListByCustomer(_ context.Context, customerID types.ID) ([]*Order, error) {
	return s.collect(func(o *Order) bool { return o.CustomerID == customerID }), nil
}

func (s *MemoryStore) ListByDasher(_ context.Context, dasherID types.ID) ([]*Order, error) {
	return s.collect(func(o *Order) bool { return o.DasherID != nil && *o.DasherID == dasherID }), nil
}

func (s *MemoryStore) ListByStatusPrefix(_ context.Context, prefix string) ([]*Order, error) {
	return s.collect(func(o *Order) bool { return strings.HasPrefix(string(o.Status), prefix) }), nil
}

func (s *MemoryStore) ListByStatusAndCustomer(_ context.Context, status Status, customerID types.ID) ([]*Order, error) {
	return s.collect(func(o *Order) bool { return o.Status == status && o.CustomerID == customerID }), nil
}

func (s *MemoryStore) ListOngoing(_ context.Context) ([]*Order, error) {
	return s.collect(func(o *Order) bool { return o.DasherID != nil && o.Status != StatusWaitingForShop }), nil
}

func (s *MemoryStore) ListPast(_ context.Context, prefix string) ([]*Order, error) {
	return s.collect(func(o *Order) bool { return !strings.HasPrefix(string(o.Status), prefix) }), nil
}

func (s *MemoryStore) HasActiveByCustomer(_ context.Context, customerID types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.CustomerID == customerID && o.Status.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) HasActiveByDasher(_ context.Context, dasherID types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.DasherID != nil && *o.DasherID == dasherID && o.Status.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ResolveNoShows(_ context.Context, customerID types.ID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, o := range s.orders {
		if o.CustomerID == customerID && o.Status == StatusNoShow {
			o.Status = StatusNoShowResolved
			o.StatusVersion++
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) AppendEvent(_ context.Context, e *StatusEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := *e
	ev.ID = int64(len(s.events) + 1)
	s.events = append(s.events, ev)
	return nil
}

// Events returns a snapshot of the audit trail, oldest first.
func (s *MemoryStore) Events() []StatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StatusEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *MemoryStore) collect(match func(*Order) bool) []*Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Order
	for _, o := range s.orders {
		if match(o) {
			out = append(out, cloneOrder(o))
		}
	}
	// Newest first; creation sequence breaks ties for orders created within
	// the same clock tick.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return s.seq[a.ID] > s.seq[b.ID]
	})
	return out
}

func cloneOrder(o *Order) *Order {
	c := *o
	if o.DasherID != nil {
		d := *o.DasherID
		c.DasherID = &d
	}
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		c.CompletedAt = &t
	}
	c.Items = append([]Item(nil), o.Items...)
	return &c
}
