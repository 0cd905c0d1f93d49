package domain

import "time"

const (
	TypePrint      = "print"
	TypeStationery = "stationery"
)

// Item is one ephemeral cart row. Items are never mutated in place: repeated
// adds create repeated rows, quantity semantics live in Details when callers
// want them.
type Item struct {
	ID        int64          `json:"id"`
	UserEmail string         `json:"userEmail"`
	Type      string         `json:"type"`
	ItemID    string         `json:"itemId"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"createdAt"`
}
