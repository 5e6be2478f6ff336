// README: Payment store backed by PostgreSQL.
package payment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campuseats/internal/types"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const paymentColumns = `id, order_id, dasher_id, shop_id, customer_id, payment_method, delivery_fee, total_price, completed_at`

func (s *PostgresStore) Append(ctx context.Context, p *Payment) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(p.ID), string(p.OrderID), string(p.DasherID), string(p.ShopID), string(p.CustomerID),
		p.PaymentMethod, p.DeliveryFee, p.TotalPrice, p.CompletedAt,
	)
	return err
}

func (s *PostgresStore) GetByOrder(ctx context.Context, orderID types.ID) (*Payment, error) {
	row := s.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, string(orderID))
	var p Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.DasherID, &p.ShopID, &p.CustomerID,
		&p.PaymentMethod, &p.DeliveryFee, &p.TotalPrice, &p.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) ListByDasher(ctx context.Context, dasherID types.ID) ([]Payment, error) {
	return s.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE dasher_id = $1 ORDER BY completed_at DESC`, string(dasherID))
}

func (s *PostgresStore) ListByShop(ctx context.Context, shopID types.ID) ([]Payment, error) {
	return s.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE shop_id = $1 ORDER BY completed_at DESC`, string(shopID))
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]Payment, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.DasherID, &p.ShopID, &p.CustomerID,
			&p.PaymentMethod, &p.DeliveryFee, &p.TotalPrice, &p.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
