package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvps-print/printshop-backend/internal/orders/domain"
	"github.com/mvps-print/printshop-backend/internal/orders/repository"
)

type stubFileStore struct {
	failAfter int // fail the call with this 1-based index; 0 never fails
	calls     int
}

func (s *stubFileStore) UploadOrderFile(ctx context.Context, data []byte, filename, orderNumber string) (string, error) {
	s.calls++
	if s.failAfter > 0 && s.calls >= s.failAfter {
		return "", errors.New("s3 unavailable")
	}
	return filename, nil
}

func (s *stubFileStore) SignedURL(ctx context.Context, filename string) (string, error) {
	return "https://signed.example/" + filename, nil
}

type recordingMailer struct {
	to      []string
	subject string
	html    string
	err     error
}

func (m *recordingMailer) Send(to []string, subject, htmlBody string) error {
	m.to, m.subject, m.html = to, subject, htmlBody
	return m.err
}

func newService(t *testing.T, files FileStore, mail MailSender) (*OrderService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	repo := repository.NewOrderRepository(db)
	return NewOrderService(repo, files, mail, "mvpservices2310@gmail.com"), mock, db
}

func expectCreate(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectExec("UPDATE orders SET orderNumber").
		WithArgs(domain.FormatOrderNumber(id), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestSubmitPrint_Success(t *testing.T) {
	files := &stubFileStore{}
	svc, mock, db := newService(t, files, &recordingMailer{})
	defer db.Close()

	expectCreate(mock, 1)
	mock.ExpectExec("UPDATE orders SET fileNames").
		WithArgs("a.pdf, b.pdf, Pen × 2", 30, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	orderNumber, err := svc.SubmitPrint(context.Background(), PrintSubmission{
		UserEmail:  "u@x.com",
		PrintType:  domain.PrintTypeBW,
		SideOption: "single",
		TotalCost:  60,
		CreatedAt:  time.Now(),
		Files: []FileUpload{
			{Name: "a.pdf", Data: []byte("a"), Pages: 10},
			{Name: "b.pdf", Data: []byte("b"), Pages: 20},
		},
		Items: []StationeryLine{{Name: "Pen", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD0001", orderNumber)
	assert.Equal(t, 2, files.calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitPrint_UploadFailureSkipsManifestPatch(t *testing.T) {
	files := &stubFileStore{failAfter: 2}
	svc, mock, db := newService(t, files, &recordingMailer{})
	defer db.Close()

	// Create succeeds; no fileNames patch may follow the failed upload.
	expectCreate(mock, 1)

	_, err := svc.SubmitPrint(context.Background(), PrintSubmission{
		UserEmail: "u@x.com",
		PrintType: domain.PrintTypeBW,
		TotalCost: 60,
		CreatedAt: time.Now(),
		Files: []FileUpload{
			{Name: "a.pdf", Data: []byte("a"), Pages: 10},
			{Name: "b.pdf", Data: []byte("b"), Pages: 20},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.pdf")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitPrint_NoFiles(t *testing.T) {
	svc, mock, db := newService(t, &stubFileStore{}, &recordingMailer{})
	defer db.Close()

	_, err := svc.SubmitPrint(context.Background(), PrintSubmission{UserEmail: "u@x.com"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitStationery(t *testing.T) {
	svc, mock, db := newService(t, &stubFileStore{}, &recordingMailer{})
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("u@x.com", "Pen × 3, Notebook × 1", domain.PrintTypeStationery, "", false,
			4, 30.0, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec("UPDATE orders SET orderNumber").
		WithArgs("ORD0001", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	orderNumber, err := svc.SubmitStationery(context.Background(), StationerySubmission{
		UserEmail: "u@x.com",
		Items: []StationeryLine{
			{Name: "Pen", Quantity: 3},
			{Name: "Notebook", Quantity: 0}, // clamped to 1
		},
		TotalCost: 30,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD0001", orderNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrders_OwnerFilter(t *testing.T) {
	svc, mock, db := newService(t, &stubFileStore{}, &recordingMailer{})
	defer db.Close()

	cols := []string{"id", "orderNumber", "userEmail", "fileNames", "printType",
		"sideOption", "spiralBinding", "totalPages", "totalCost", "status", "createdAt"}
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY createdAt DESC").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(2), "ORD0002", "b@x.com", "b.pdf", "bw", "single", false, 5, 10.0, "new", now).
			AddRow(int64(1), "ORD0001", "a@x.com", "a.pdf", "bw", "single", false, 5, 10.0, "new", now))

	orders, err := svc.Orders(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD0001", orders[0].OrderNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPayment(t *testing.T) {
	cols := []string{"id", "orderNumber", "userEmail", "fileNames", "printType",
		"sideOption", "spiralBinding", "totalPages", "totalCost", "status", "createdAt"}

	t.Run("sends to owner and operator inbox", func(t *testing.T) {
		mailer := &recordingMailer{}
		svc, mock, db := newService(t, &stubFileStore{}, mailer)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM orders WHERE orderNumber").
			WithArgs("ORD0005").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(5), "ORD0005", "u@x.com", "a.pdf, Pen × 2", "color", "double", true, 10, 99.5, "new", time.Now()))

		require.NoError(t, svc.ConfirmPayment(context.Background(), "ORD0005"))
		assert.Equal(t, []string{"u@x.com", "mvpservices2310@gmail.com"}, mailer.to)
		assert.Equal(t, "📌 MVPS Order Confirmed - ORD0005", mailer.subject)
		assert.Contains(t, mailer.html, "ORD0005")
		assert.Contains(t, mailer.html, "₹99.50")
		assert.Contains(t, mailer.html, "<li>a.pdf</li>")
		assert.Contains(t, mailer.html, "<li>Pen × 2</li>")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown order", func(t *testing.T) {
		svc, mock, db := newService(t, &stubFileStore{}, &recordingMailer{})
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM orders WHERE orderNumber").
			WithArgs("ORD9999").
			WillReturnRows(sqlmock.NewRows(cols))

		err := svc.ConfirmPayment(context.Background(), "ORD9999")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mail failure surfaces", func(t *testing.T) {
		mailer := &recordingMailer{err: fmt.Errorf("smtp down")}
		svc, mock, db := newService(t, &stubFileStore{}, mailer)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM orders WHERE orderNumber").
			WithArgs("ORD0005").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(5), "ORD0005", "u@x.com", "a.pdf", "bw", "single", false, 10, 99.5, "new", time.Now()))

		require.Error(t, svc.ConfirmPayment(context.Background(), "ORD0005"))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConfirmationHTML(t *testing.T) {
	t.Run("print order shows print options", func(t *testing.T) {
		html := ConfirmationHTML(&domain.Order{
			OrderNumber:   "ORD0003",
			PrintType:     domain.PrintTypeColor,
			SideOption:    "double",
			SpiralBinding: true,
			TotalCost:     120,
			Manifest:      "a.pdf",
		})
		assert.Contains(t, html, "🧾 Order Confirmation")
		assert.Contains(t, html, "₹120.00")
		assert.Contains(t, html, "<strong>Print Type:</strong> Color")
		assert.Contains(t, html, "<strong>Print Side:</strong> Back to Back")
		assert.Contains(t, html, "<strong>Spiral Binding:</strong> Yes")
	})

	t.Run("stationery order omits print options", func(t *testing.T) {
		html := ConfirmationHTML(&domain.Order{
			OrderNumber: "ORD0004",
			PrintType:   domain.PrintTypeStationery,
			TotalCost:   30,
			Manifest:    "Pen × 3",
		})
		assert.NotContains(t, html, "Print Type")
		assert.Contains(t, html, "<strong>Stationery Items:</strong>")
		assert.Contains(t, html, "<li>Pen × 3</li>")
	})
}
