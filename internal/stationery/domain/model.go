package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Discount    float64   `json:"discount"`
	Images      []string  `json:"images"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	Variants    []string  `json:"variants"`
	CreatedAt   time.Time `json:"createdAt"`
}
