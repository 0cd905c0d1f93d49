package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvps-print/printshop-backend/internal/orders/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the row and stamps the derived order number in the same
// transaction, so no committed order is ever readable without a number.
func (r *OrderRepository) Create(ctx context.Context, o domain.Order) (int64, string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, "", fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders
			(userEmail, fileNames, printType, sideOption, spiralBinding, totalPages, totalCost, status, createdAt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'new', $8)
		RETURNING id`,
		o.UserEmail, o.Manifest, o.PrintType, o.SideOption, o.SpiralBinding,
		o.TotalPages, o.TotalCost, o.CreatedAt).Scan(&id)
	if err != nil {
		return 0, "", fmt.Errorf("insert order: %w", err)
	}

	orderNumber := domain.FormatOrderNumber(id)
	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET orderNumber = $1 WHERE id = $2`, orderNumber, id); err != nil {
		return 0, "", fmt.Errorf("stamp order number: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, "", fmt.Errorf("commit order: %w", err)
	}
	return id, orderNumber, nil
}

func (r *OrderRepository) UpdateFiles(ctx context.Context, orderID int64, manifest string, totalPages int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET fileNames = $1, totalPages = $2 WHERE id = $3`,
		manifest, totalPages, orderID)
	return err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	return err
}

const orderColumns = `id, COALESCE(orderNumber, ''), userEmail, fileNames, printType,
	sideOption, spiralBinding, totalPages, totalCost, status, createdAt`

func scanOrder(row interface{ Scan(...any) error }) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserEmail, &o.Manifest, &o.PrintType,
		&o.SideOption, &o.SpiralBinding, &o.TotalPages, &o.TotalCost, &o.Status, &o.CreatedAt)
	return o, err
}

// All returns every order, newest first. The optional owner filter is applied
// by the service layer, not here.
func (r *OrderRepository) All(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY createdAt DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Order, 0, 16)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) ByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE orderNumber = $1`, orderNumber)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
