// README: Wallet accounts and append-only ledger entries.
package wallet

import (
	"time"

	"campuseats/internal/types"
)

type Kind string

const (
	KindDasher Kind = "dasher"
	KindShop   Kind = "shop"
)

// Account balances are in centavos. Dasher balances may go negative: a cash
// order leaves the dasher owing the platform its admin cut.
type Account struct {
	OwnerID types.ID
	Kind    Kind
	Balance int64
	Version int
}

// Entry is one wallet mutation. Entries are never updated or deleted.
type Entry struct {
	ID        types.ID
	OwnerID   types.ID
	Kind      Kind
	Amount    int64
	Reason    string
	OrderID   types.ID
	CreatedAt time.Time
}
