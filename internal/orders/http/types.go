package http

import (
	"time"

	"github.com/mvps-print/printshop-backend/internal/orders/domain"
	"github.com/mvps-print/printshop-backend/internal/orders/service"
)

type Handler struct {
	orders *service.OrderService
}

func New(orders *service.OrderService) *Handler {
	return &Handler{orders: orders}
}

type attachedFile struct {
	Name string `json:"name"`
}

// orderJSON is the normalized wire shape of an order.
type orderJSON struct {
	ID            int64          `json:"id"`
	OrderNumber   string         `json:"orderNumber"`
	UserEmail     string         `json:"userEmail"`
	FileNames     string         `json:"fileNames"`
	PrintType     string         `json:"printType"`
	SideOption    string         `json:"sideOption"`
	SpiralBinding bool           `json:"spiralBinding"`
	TotalPages    int            `json:"totalPages"`
	TotalCost     float64        `json:"totalCost"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	AttachedFiles []attachedFile `json:"attachedFiles"`
}

func toOrderJSON(o domain.Order) orderJSON {
	attached := []attachedFile{}
	for _, it := range domain.ParseManifest(o.Manifest) {
		attached = append(attached, attachedFile{Name: it.Name})
	}
	return orderJSON{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserEmail:     o.UserEmail,
		FileNames:     o.Manifest,
		PrintType:     o.PrintType,
		SideOption:    o.SideOption,
		SpiralBinding: o.SpiralBinding,
		TotalPages:    o.TotalPages,
		TotalCost:     o.TotalCost,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		AttachedFiles: attached,
	}
}

// parseCreatedAt accepts the client-supplied RFC3339 timestamp and falls back
// to the current time when it is absent or malformed.
func parseCreatedAt(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now().UTC()
}
