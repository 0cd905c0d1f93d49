package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mvps-print/printshop-backend/internal/orders/domain"
	"github.com/mvps-print/printshop-backend/internal/orders/repository"
)

// FileStore is the object-storage collaborator for order uploads.
type FileStore interface {
	// UploadOrderFile stores one file under the order's namespace and returns
	// the cleaned file name recorded in the manifest.
	UploadOrderFile(ctx context.Context, data []byte, filename, orderNumber string) (string, error)
	SignedURL(ctx context.Context, filename string) (string, error)
}

// MailSender dispatches one HTML email. A send failure fails the caller.
type MailSender interface {
	Send(to []string, subject, htmlBody string) error
}

type FileUpload struct {
	Name  string
	Data  []byte
	Pages int
}

type StationeryLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type PrintSubmission struct {
	UserEmail     string
	PrintType     string
	SideOption    string
	SpiralBinding bool
	TotalCost     float64
	CreatedAt     time.Time
	Files         []FileUpload
	Items         []StationeryLine
}

type StationerySubmission struct {
	UserEmail string
	Items     []StationeryLine
	TotalCost float64
	CreatedAt time.Time
}

type OrderService struct {
	repo       *repository.OrderRepository
	files      FileStore
	mail       MailSender
	orderInbox string
}

func NewOrderService(repo *repository.OrderRepository, files FileStore, mail MailSender, orderInbox string) *OrderService {
	return &OrderService{
		repo:       repo,
		files:      files,
		mail:       mail,
		orderInbox: orderInbox,
	}
}

// SubmitPrint creates the order first, then uploads every file under the
// assigned order number. All uploads must succeed before the manifest is
// patched in: a single failure fails the whole submission and the row keeps
// its empty manifest rather than a truncated one.
func (s *OrderService) SubmitPrint(ctx context.Context, sub PrintSubmission) (string, error) {
	if len(sub.Files) == 0 {
		return "", fmt.Errorf("no files supplied")
	}

	order := domain.Order{
		UserEmail:     sub.UserEmail,
		PrintType:     sub.PrintType,
		SideOption:    sub.SideOption,
		SpiralBinding: sub.SpiralBinding,
		TotalCost:     sub.TotalCost,
		CreatedAt:     sub.CreatedAt,
	}
	orderID, orderNumber, err := s.repo.Create(ctx, order)
	if err != nil {
		return "", err
	}

	items := make([]domain.LineItem, 0, len(sub.Files)+len(sub.Items))
	for _, f := range sub.Files {
		cleanName, err := s.files.UploadOrderFile(ctx, f.Data, f.Name, orderNumber)
		if err != nil {
			return "", fmt.Errorf("upload %s for %s: %w", f.Name, orderNumber, err)
		}
		items = append(items, domain.FileItem(cleanName, f.Pages))
	}
	for _, it := range sub.Items {
		items = append(items, domain.StationeryItem(it.Name, it.Quantity))
	}

	manifest := domain.RenderManifest(items)
	if err := s.repo.UpdateFiles(ctx, orderID, manifest, domain.TotalPages(items)); err != nil {
		return "", fmt.Errorf("patch order files: %w", err)
	}

	return orderNumber, nil
}

// SubmitStationery has no upload step: the manifest is flattened directly
// from the item list and stored at creation time.
func (s *OrderService) SubmitStationery(ctx context.Context, sub StationerySubmission) (string, error) {
	if len(sub.Items) == 0 {
		return "", fmt.Errorf("no items supplied")
	}

	items := make([]domain.LineItem, 0, len(sub.Items))
	totalQty := 0
	for _, it := range sub.Items {
		li := domain.StationeryItem(it.Name, it.Quantity)
		items = append(items, li)
		totalQty += li.Quantity
	}

	order := domain.Order{
		UserEmail:  sub.UserEmail,
		Manifest:   domain.RenderManifest(items),
		PrintType:  domain.PrintTypeStationery,
		TotalPages: totalQty,
		TotalCost:  sub.TotalCost,
		CreatedAt:  sub.CreatedAt,
	}
	_, orderNumber, err := s.repo.Create(ctx, order)
	if err != nil {
		return "", err
	}
	return orderNumber, nil
}

// Orders lists all orders newest-first; the owner filter is applied here,
// not in the store.
func (s *OrderService) Orders(ctx context.Context, emailFilter string) ([]domain.Order, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if emailFilter == "" {
		return all, nil
	}
	out := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if o.UserEmail == emailFilter {
			out = append(out, o)
		}
	}
	return out, nil
}

// UpdateStatus overwrites unconditionally; the status set is open. Unknown
// values are accepted but logged for operator review.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if !domain.IsKnownStatus(status) {
		log.Printf("[orders] order %d set to unrecognized status %q", orderID, status)
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}

// ConfirmPayment renders the confirmation from the stored manifest and sends
// exactly one email to the owner plus the operator inbox. Email failure is
// the caller's failure; there is no silent success.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderNumber string) error {
	order, err := s.repo.ByNumber(ctx, orderNumber)
	if err != nil {
		return err
	}

	html := ConfirmationHTML(order)
	subject := fmt.Sprintf("📌 MVPS Order Confirmed - %s", orderNumber)
	if err := s.mail.Send([]string{order.UserEmail, s.orderInbox}, subject, html); err != nil {
		return fmt.Errorf("send confirmation for %s: %w", orderNumber, err)
	}
	return nil
}

func (s *OrderService) SignedURL(ctx context.Context, filename string) (string, error) {
	return s.files.SignedURL(ctx, filename)
}

// ConfirmationHTML renders the confirmation email body. The markup is part
// of the external contract; change it and customers notice.
func ConfirmationHTML(o *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<h2>🧾 Order Confirmation</h2>
      <p><strong>Order No:</strong> %s</p>
      <p><strong>Total:</strong> ₹%.2f</p>`, o.OrderNumber, o.TotalCost)

	if o.PrintType != domain.PrintTypeStationery {
		printType := "Black & White"
		if o.PrintType == domain.PrintTypeColor {
			printType = "Color"
		}
		side := "Single Sided"
		if o.SideOption == "double" {
			side = "Back to Back"
		}
		spiral := "No"
		if o.SpiralBinding {
			spiral = "Yes"
		}
		fmt.Fprintf(&b, `
        <p><strong>Print Type:</strong> %s</p>
        <p><strong>Print Side:</strong> %s</p>
        <p><strong>Spiral Binding:</strong> %s</p>`, printType, side, spiral)
	}

	files, stationery := domain.SplitManifest(o.Manifest)
	if len(files) > 0 {
		b.WriteString(`<p><strong>Files:</strong></p><ul>`)
		for _, n := range files {
			fmt.Fprintf(&b, "<li>%s</li>", n)
		}
		b.WriteString(`</ul>`)
	}
	if len(stationery) > 0 {
		b.WriteString(`<p><strong>Stationery Items:</strong></p><ul>`)
		for _, n := range stationery {
			fmt.Fprintf(&b, "<li>%s</li>", n)
		}
		b.WriteString(`</ul>`)
	}

	return b.String()
}
