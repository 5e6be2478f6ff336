// README: Wallet store contract.
package wallet

import (
	"context"

	"campuseats/internal/types"
)

// Store persists accounts and ledger entries. Apply is a compare-and-swap
// on the account version: concurrent writers (settlement, cashouts, top-ups)
// retry instead of overwriting each other's balances.
type Store interface {
	// Ensure returns the account, creating it with a zero balance if missing.
	Ensure(ctx context.Context, owner types.ID, kind Kind) (*Account, error)
	// Apply adds e.Amount to the balance and records e in the ledger as one
	// atomic mutation, provided the account version still matches. A version
	// miss returns (false, nil) and writes nothing: the balance never moves
	// without its ledger entry.
	Apply(ctx context.Context, owner types.ID, kind Kind, version int, e *Entry) (bool, error)
	Balance(ctx context.Context, owner types.ID, kind Kind) (int64, error)
	ListEntries(ctx context.Context, owner types.ID, kind Kind) ([]Entry, error)
}
