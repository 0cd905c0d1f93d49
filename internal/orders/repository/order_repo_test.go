package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvps-print/printshop-backend/internal/orders/domain"
)

func newOrder() domain.Order {
	return domain.Order{
		UserEmail:     "u@x.com",
		Manifest:      "",
		PrintType:     domain.PrintTypeBW,
		SideOption:    "single",
		SpiralBinding: false,
		TotalPages:    0,
		TotalCost:     25,
		CreatedAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreate_StampsOrderNumberInSameTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	o := newOrder()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(o.UserEmail, o.Manifest, o.PrintType, o.SideOption, o.SpiralBinding,
			o.TotalPages, o.TotalCost, o.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec("UPDATE orders SET orderNumber").
		WithArgs("ORD0001", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewOrderRepository(db)
	id, orderNumber, err := repo.Create(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "ORD0001", orderNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RollsBackWhenStampFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	o := newOrder()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(o.UserEmail, o.Manifest, o.PrintType, o.SideOption, o.SpiralBinding,
			o.TotalPages, o.TotalCost, o.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("UPDATE orders SET orderNumber").
		WithArgs("ORD0007", int64(7)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	repo := NewOrderRepository(db)
	_, _, err = repo.Create(context.Background(), o)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE orders SET fileNames").
		WithArgs("a.pdf, b.pdf", 30, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOrderRepository(db)
	require.NoError(t, repo.UpdateFiles(context.Background(), 4, "a.pdf, b.pdf", 30))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestByNumber_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE orderNumber").
		WithArgs("ORD9999").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewOrderRepository(db)
	_, err = repo.ByNumber(context.Background(), "ORD9999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAll_NewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "orderNumber", "userEmail", "fileNames", "printType",
		"sideOption", "spiralBinding", "totalPages", "totalCost", "status", "createdAt"}
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY createdAt DESC").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(2), "ORD0002", "b@x.com", "b.pdf", "color", "double", true, 10, 50.0, "new", now).
			AddRow(int64(1), "ORD0001", "a@x.com", "a.pdf", "bw", "single", false, 5, 10.0, "completed", now.Add(-time.Hour)))

	repo := NewOrderRepository(db)
	orders, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD0002", orders[0].OrderNumber)
	assert.Equal(t, "ORD0001", orders[1].OrderNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}
