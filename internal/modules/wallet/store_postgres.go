// README: Wallet store backed by PostgreSQL.
package wallet

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"campuseats/internal/types"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ensure(ctx context.Context, owner types.ID, kind Kind) (*Account, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO wallet_accounts (owner_id, kind, balance, version)
		VALUES ($1, $2, 0, 0)
		ON CONFLICT (owner_id, kind) DO UPDATE SET owner_id = EXCLUDED.owner_id
		RETURNING owner_id, kind, balance, version`,
		string(owner), string(kind),
	)
	var a Account
	if err := row.Scan(&a.OwnerID, &a.Kind, &a.Balance, &a.Version); err != nil {
		return nil, err
	}
	return &a, nil
}

// Apply runs the balance CAS and the ledger insert in one transaction. If the
// version no longer matches, the transaction rolls back with nothing written.
func (s *PostgresStore) Apply(ctx context.Context, owner types.ID, kind Kind, version int, e *Entry) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE wallet_accounts
		SET balance = balance + $1, version = version + 1
		WHERE owner_id = $2 AND kind = $3 AND version = $4`,
		e.Amount, string(owner), string(kind), version,
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO wallet_entries (id, owner_id, kind, amount, reason, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(e.ID), string(e.OwnerID), string(e.Kind), e.Amount, e.Reason, string(e.OrderID), e.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

func (s *PostgresStore) Balance(ctx context.Context, owner types.ID, kind Kind) (int64, error) {
	var balance int64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE((SELECT balance FROM wallet_accounts WHERE owner_id = $1 AND kind = $2), 0)`,
		string(owner), string(kind),
	).Scan(&balance)
	return balance, err
}

func (s *PostgresStore) ListEntries(ctx context.Context, owner types.ID, kind Kind) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, owner_id, kind, amount, reason, order_id, created_at
		FROM wallet_entries
		WHERE owner_id = $1 AND kind = $2
		ORDER BY created_at DESC`,
		string(owner), string(kind),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Kind, &e.Amount, &e.Reason, &e.OrderID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
