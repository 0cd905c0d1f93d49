package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	PrintTypeColor      = "color"
	PrintTypeBW         = "bw"
	PrintTypeStationery = "stationery"
)

// Status values known to the API. Storage keeps status as an open string:
// any value is accepted, unknown ones are logged for operator review.
const (
	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var ErrNotFound = errors.New("order not found")

type Order struct {
	ID            int64
	OrderNumber   string
	UserEmail     string
	Manifest      string
	PrintType     string
	SideOption    string
	SpiralBinding bool
	TotalPages    int
	TotalCost     float64
	Status        string
	CreatedAt     time.Time
}

// FormatOrderNumber derives the display identifier from the store-assigned id.
func FormatOrderNumber(id int64) string {
	return fmt.Sprintf("ORD%04d", id)
}

func IsKnownStatus(s string) bool {
	switch s {
	case StatusNew, StatusProcessing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
