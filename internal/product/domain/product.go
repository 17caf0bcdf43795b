package domain

import (
	"context"
	"errors"
	"strings"
)

// Product represents a catalog item. Quantity is the on-hand amount and is
// mutated only through signed adjustments; it never goes negative.
type Product struct {
	ProductID   string  `json:"ProductID"`
	Name        string  `json:"Name"`
	Description string  `json:"Description"`
	Category    string  `json:"Category"`
	Quantity    int64   `json:"Quantity"`
	LastPrice   float64 `json:"LastPrice"`
}

var (
	// ErrNotFound is returned when no product exists under the requested ID
	ErrNotFound = errors.New("product not found")
	// ErrAlreadyExists is returned when creating a product whose ID is taken
	ErrAlreadyExists = errors.New("product already exists")
	// ErrInsufficientQuantity is returned when an adjustment would drive the
	// on-hand quantity below zero
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

// ValidationError carries every structural problem found in one payload so a
// caller can fix them in a single round trip.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	// UpdateFields replaces only the named attributes of the stored record.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}
