// README: Shop store backed by PostgreSQL.
package shop

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

func (s *PostgresStore) CreateShop(ctx context.Context, sh *Shop) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO shops (id, name, created_at) VALUES ($1, $2, $3)`,
		string(sh.ID), sh.Name, sh.CreatedAt,
	)
	return err
}

func (s *PostgresStore) GetShop(ctx context.Context, id types.ID) (*Shop, error) {
	var sh Shop
	err := s.db.QueryRow(ctx, `SELECT id, name, created_at FROM shops WHERE id = $1`, string(id)).
		Scan(&sh.ID, &sh.Name, &sh.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *PostgresStore) CreateItem(ctx context.Context, it *Item) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO shop_items (id, shop_id, name, unit_price, stock)
		VALUES ($1, $2, $3, $4, $5)`,
		string(it.ID), string(it.ShopID), it.Name, it.UnitPrice, it.Stock,
	)
	return err
}

func (s *PostgresStore) GetItem(ctx context.Context, id types.ID) (*Item, error) {
	var it Item
	err := s.db.QueryRow(ctx, `SELECT id, shop_id, name, unit_price, stock FROM shop_items WHERE id = $1`, string(id)).
		Scan(&it.ID, &it.ShopID, &it.Name, &it.UnitPrice, &it.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *PostgresStore) ListItems(ctx context.Context, shopID types.ID) ([]Item, error) {
	rows, err := s.db.Query(ctx, `SELECT id, shop_id, name, unit_price, stock FROM shop_items WHERE shop_id = $1 ORDER BY name`, string(shopID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ShopID, &it.Name, &it.UnitPrice, &it.Stock); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddStock(ctx context.Context, itemID types.ID, delta int) error {
	tag, err := s.db.Exec(ctx, `UPDATE shop_items SET stock = stock + $1 WHERE id = $2`, delta, string(itemID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
