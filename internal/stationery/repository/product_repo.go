package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mvps-print/printshop-backend/internal/stationery/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func imagesJSON(images []string) []byte {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func (r *ProductRepository) Insert(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stationery_products
			(name, description, price, discount, images, sku, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.Name, p.Description, p.Price, p.Discount, imagesJSON(p.Images), p.SKU, p.Quantity)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stationery_products
		SET name = $1,
			description = $2,
			price = $3,
			discount = $4,
			images = $5
		WHERE id = $6`,
		p.Name, p.Description, p.Price, p.Discount, imagesJSON(p.Images), p.ID)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM stationery_products WHERE id = $1`, id)
	return err
}

func (r *ProductRepository) SetSKU(ctx context.Context, id int64, sku string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE stationery_products SET sku = $1 WHERE id = $2`, sku, id)
	return err
}

func (r *ProductRepository) SetQuantity(ctx context.Context, id int64, quantity int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE stationery_products SET quantity = $1 WHERE id = $2`, quantity, id)
	return err
}

// List returns the catalog, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price, discount, images, sku, quantity, createdAt
		FROM stationery_products
		ORDER BY createdAt DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Product, 0, 16)
	for rows.Next() {
		var p domain.Product
		var rawImages []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Discount,
			&rawImages, &p.SKU, &p.Quantity, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawImages, &p.Images); err != nil || p.Images == nil {
			p.Images = []string{}
		}
		p.Variants = []string{}
		out = append(out, p)
	}
	return out, rows.Err()
}
