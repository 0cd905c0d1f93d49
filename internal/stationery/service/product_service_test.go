package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvps-print/printshop-backend/internal/stationery/repository"
)

type stubImageStore struct {
	urls  []string
	calls int
	err   error
}

func (s *stubImageStore) UploadProductImage(ctx context.Context, data []byte, filename string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	url := "https://bucket.s3.amazonaws.com/stationery/" + filename
	s.urls = append(s.urls, url)
	return url, nil
}

func setup(t *testing.T, images ImageStore) (*ProductService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewProductService(repository.NewProductRepository(db), images), mock, db
}

func TestAdd(t *testing.T) {
	t.Run("uploads images and stores their urls", func(t *testing.T) {
		images := &stubImageStore{}
		svc, mock, db := setup(t, images)
		defer db.Close()

		mock.ExpectExec("INSERT INTO stationery_products").
			WithArgs("Pen", "Blue ink", 10.0, 0.0,
				[]byte(`["https://bucket.s3.amazonaws.com/stationery/pen.jpg"]`), "PEN-01", 50).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := svc.Add(context.Background(),
			ProductInput{Name: "Pen", Description: "Blue ink", Price: 10, SKU: "PEN-01", Quantity: 50},
			[]ImageUpload{{Name: "pen.jpg", Data: []byte("jpg")}})
		require.NoError(t, err)
		assert.Equal(t, 1, images.calls)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("upload failure aborts before the insert", func(t *testing.T) {
		svc, mock, db := setup(t, &stubImageStore{err: errors.New("s3 unavailable")})
		defer db.Close()

		err := svc.Add(context.Background(),
			ProductInput{Name: "Pen", Price: 10},
			[]ImageUpload{{Name: "pen.jpg", Data: []byte("jpg")}})
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdate_MergesKeptAndNewImages(t *testing.T) {
	images := &stubImageStore{}
	svc, mock, db := setup(t, images)
	defer db.Close()

	// Kept URLs first, freshly uploaded ones appended.
	mock.ExpectExec("UPDATE stationery_products").
		WithArgs("Pen", "Blue ink", 12.0, 1.0,
			[]byte(`["https://old/1.jpg","https://bucket.s3.amazonaws.com/stationery/new.jpg"]`), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.Update(context.Background(), 4,
		ProductInput{Name: "Pen", Description: "Blue ink", Price: 12, Discount: 1},
		[]string{"https://old/1.jpg"},
		[]ImageUpload{{Name: "new.jpg", Data: []byte("jpg")}})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_NormalizesImages(t *testing.T) {
	svc, mock, db := setup(t, &stubImageStore{})
	defer db.Close()

	cols := []string{"id", "name", "description", "price", "discount", "images", "sku", "quantity", "createdAt"}
	mock.ExpectQuery("SELECT (.+) FROM stationery_products ORDER BY createdAt DESC").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), "Pen", "Blue ink", 10.0, 0.0, []byte(`["https://a/1.jpg"]`), "PEN-01", 50, time.Now()).
			AddRow(int64(2), "Notebook", "", 40.0, 5.0, []byte(`null`), "", 0, time.Now()))

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, []string{"https://a/1.jpg"}, products[0].Images)
	assert.NotNil(t, products[1].Images)
	assert.Empty(t, products[1].Images)
	assert.NotNil(t, products[0].Variants)
	require.NoError(t, mock.ExpectationsWereMet())
}
