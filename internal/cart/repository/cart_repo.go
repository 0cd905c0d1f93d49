package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mvps-print/printshop-backend/internal/cart/domain"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) Add(ctx context.Context, item domain.Item) error {
	details := item.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		raw = []byte("{}")
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO carts (userEmail, type, itemId, details)
		VALUES ($1, $2, $3, $4)`,
		item.UserEmail, item.Type, item.ItemID, raw)
	return err
}

func (r *CartRepository) ListByEmail(ctx context.Context, email string) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, userEmail, type, itemId, details, createdAt
		FROM carts WHERE userEmail = $1 ORDER BY createdAt DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Item, 0, 8)
	for rows.Next() {
		var it domain.Item
		var raw sql.NullString
		if err := rows.Scan(&it.ID, &it.UserEmail, &it.Type, &it.ItemID, &raw, &it.CreatedAt); err != nil {
			return nil, err
		}
		it.Details = map[string]any{}
		if raw.Valid && raw.String != "" {
			if err := json.Unmarshal([]byte(raw.String), &it.Details); err != nil {
				it.Details = map[string]any{}
			}
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *CartRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, id)
	return err
}

// PurgeOlderThan drops stale rows; carts are ephemeral and abandoned ones
// only accumulate.
func (r *CartRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM carts WHERE createdAt < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
