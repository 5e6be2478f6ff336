// README: Order store backed by PostgreSQL.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"campuseats/internal/types"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const orderColumns = `
	id, customer_id, shop_id, dasher_id, status, status_version,
	items, delivery_fee, total_price, payment_method,
	previous_no_show_fee, previous_no_show_items,
	delivery_proof_uri, no_show_proof_uri,
	created_at, completed_at`

func (s *PostgresStore) Create(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO orders (
			id, customer_id, shop_id, dasher_id, status, status_version,
			items, delivery_fee, total_price, payment_method,
			previous_no_show_fee, previous_no_show_items,
			delivery_proof_uri, no_show_proof_uri, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12,
			$13, $14, $15
		)`,
		string(o.ID), string(o.CustomerID), string(o.ShopID), idPtr(o.DasherID),
		string(o.Status), o.StatusVersion,
		items, o.DeliveryFee, o.TotalPrice, string(o.PaymentMethod),
		o.PreviousNoShowFee, o.PreviousNoShowItems,
		o.DeliveryProofURI, o.NoShowProofURI, o.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uniq_orders_active_customer" {
		return ErrActiveOrder
	}
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, string(id))
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, dasherID *types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
		    status_version = status_version + 1,
		    dasher_id = COALESCE($2, dasher_id),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to), idPtr(dasherID), string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) ClearDasher(ctx context.Context, id types.ID, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
		    status_version = status_version + 1,
		    dasher_id = NULL
		WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to), string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) Complete(ctx context.Context, id types.ID, from Status, version int, deliveryFee int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
		    status_version = status_version + 1,
		    delivery_fee = $2,
		    completed_at = NOW()
		WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(StatusCompleted), deliveryFee, string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) SetProofs(ctx context.Context, id types.ID, deliveryProofURI, noShowProofURI string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET delivery_proof_uri = CASE WHEN $1 <> '' THEN $1 ELSE delivery_proof_uri END,
		    no_show_proof_uri = CASE WHEN $2 <> '' THEN $2 ELSE no_show_proof_uri END
		WHERE id = $3`,
		deliveryProofURI, noShowProofURI, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByCustomer(ctx context.Context, customerID types.ID) ([]*Order, error) {
	return s.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`, string(customerID))
}

func (s *PostgresStore) ListByDasher(ctx context.Context, dasherID types.ID) ([]*Order, error) {
	return s.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE dasher_id = $1 ORDER BY created_at DESC`, string(dasherID))
}

func (s *PostgresStore) ListByStatusPrefix(ctx context.Context, prefix string) ([]*Order, error) {
	return s.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status LIKE $1 || '%' ORDER BY created_at DESC`, prefix)
}

func (s *PostgresStore) ListByStatusAndCustomer(ctx context.Context, status Status, customerID types.ID) ([]*Order, error) {
	return s.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 AND customer_id = $2 ORDER BY created_at DESC`,
		string(status), string(customerID))
}

func (s *PostgresStore) ListOngoing(ctx context.Context) ([]*Order, error) {
	return s.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE dasher_id IS NOT NULL AND status <> $1 ORDER BY created_at DESC`,
		string(StatusWaitingForShop))
}

func (s *PostgresStore) ListPast(ctx context.Context, prefix string) ([]*Order, error) {
	return s.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status NOT LIKE $1 || '%' ORDER BY created_at DESC`, prefix)
}

func (s *PostgresStore) HasActiveByCustomer(ctx context.Context, customerID types.ID) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE customer_id = $1 AND status LIKE 'active%')`, string(customerID))
}

func (s *PostgresStore) HasActiveByDasher(ctx context.Context, dasherID types.ID) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE dasher_id = $1 AND status LIKE 'active%')`, string(dasherID))
}

func (s *PostgresStore) ResolveNoShows(ctx context.Context, customerID types.ID) (int, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1, status_version = status_version + 1
		WHERE customer_id = $2 AND status = $3`,
		string(StatusNoShowResolved), string(customerID), string(StatusNoShow),
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) AppendEvent(ctx context.Context, e *StatusEvent) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_status_events (order_id, from_status, to_status, actor_type, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.OrderID), string(e.FromStatus), string(e.ToStatus),
		e.ActorType, idPtr(e.ActorID), e.CreatedAt,
	)
	return err
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PostgresStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found bool
	if err := s.db.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o           Order
		dasherID    *string
		items       []byte
		completedAt *time.Time
	)
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.ShopID, &dasherID, &o.Status, &o.StatusVersion,
		&items, &o.DeliveryFee, &o.TotalPrice, &o.PaymentMethod,
		&o.PreviousNoShowFee, &o.PreviousNoShowItems,
		&o.DeliveryProofURI, &o.NoShowProofURI,
		&o.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	if dasherID != nil {
		d := types.ID(*dasherID)
		o.DasherID = &d
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, err
		}
	}
	o.CompletedAt = completedAt
	return &o, nil
}

func idPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
