// README: Dasher store backed by PostgreSQL.
package dasher

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

func (s *PostgresStore) Create(ctx context.Context, d *Dasher) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO dashers (id, name, status, created_at) VALUES ($1, $2, $3, $4)`,
		string(d.ID), d.Name, string(d.Status), d.CreatedAt,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Dasher, error) {
	var d Dasher
	err := s.db.QueryRow(ctx, `SELECT id, name, status, created_at FROM dashers WHERE id = $1`, string(id)).
		Scan(&d.ID, &d.Name, &d.Status, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id types.ID, status Status) error {
	tag, err := s.db.Exec(ctx, `UPDATE dashers SET status = $1 WHERE id = $2`, string(status), string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Dasher, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, status, created_at FROM dashers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Dasher
	for rows.Next() {
		var d Dasher
		if err := rows.Scan(&d.ID, &d.Name, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
