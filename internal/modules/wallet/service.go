// README: Wallet ledger service: atomic credit/debit with optimistic retries.
package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"campuseats/internal/types"
)

var (
	ErrContention = errors.New("wallet balance contention")
	ErrBadAmount  = errors.New("amount must not be zero")
)

// maxRetries bounds the CAS loop under contending settlement/cashout writers.
const maxRetries = 5

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Credit adds amount (which may be negative) to the owner's balance and
// records a ledger entry in the same store mutation. The balance CAS and the
// entry land together or not at all, so every balance change has an audit row.
func (s *Service) Credit(ctx context.Context, owner types.ID, kind Kind, amount int64, reason string, orderID types.ID) error {
	if amount == 0 {
		return ErrBadAmount
	}
	for i := 0; i < maxRetries; i++ {
		a, err := s.store.Ensure(ctx, owner, kind)
		if err != nil {
			return err
		}
		ok, err := s.store.Apply(ctx, owner, kind, a.Version, &Entry{
			ID:        types.ID(uuid.NewString()),
			OwnerID:   owner,
			Kind:      kind,
			Amount:    amount,
			Reason:    reason,
			OrderID:   orderID,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return ErrContention
}

// Debit is a convenience wrapper for negative credits (cashouts, fees).
func (s *Service) Debit(ctx context.Context, owner types.ID, kind Kind, amount int64, reason string, orderID types.ID) error {
	return s.Credit(ctx, owner, kind, -amount, reason, orderID)
}

func (s *Service) Balance(ctx context.Context, owner types.ID, kind Kind) (types.Money, error) {
	b, err := s.store.Balance(ctx, owner, kind)
	if err != nil {
		return types.Money{}, err
	}
	return types.PHP(b), nil
}

func (s *Service) Entries(ctx context.Context, owner types.ID, kind Kind) ([]Entry, error) {
	return s.store.ListEntries(ctx, owner, kind)
}
