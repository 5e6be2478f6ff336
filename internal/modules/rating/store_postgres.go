// README: Rating store backed by PostgreSQL.
package rating

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

func (s *PostgresStore) Create(ctx context.Context, r *Rating) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ratings (id, dasher_id, order_id, rate, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(r.ID), string(r.DasherID), string(r.OrderID), r.Rate, r.Comment, r.CreatedAt,
	)
	return err
}

func (s *PostgresStore) ListByDasher(ctx context.Context, dasherID types.ID) ([]Rating, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, dasher_id, order_id, rate, comment, created_at
		FROM ratings
		WHERE dasher_id = $1
		ORDER BY created_at DESC`,
		string(dasherID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rating
	for rows.Next() {
		var r Rating
		if err := rows.Scan(&r.ID, &r.DasherID, &r.OrderID, &r.Rate, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
