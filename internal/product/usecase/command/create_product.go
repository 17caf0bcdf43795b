package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/warehouse-inbound/internal/product/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	ProductID   string
	Name        string
	Description string
	Category    string
	Quantity    int64
	LastPrice   float64
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	var msgs []string
	if cmd.ProductID == "" {
		msgs = append(msgs, "ProductID is required")
	}
	if cmd.Name == "" {
		msgs = append(msgs, "Name is required")
	}
	if cmd.Category == "" {
		msgs = append(msgs, "Category is required")
	}
	if cmd.Quantity < 0 {
		msgs = append(msgs, "Quantity cannot be negative")
	}
	if cmd.LastPrice <= 0 {
		msgs = append(msgs, "LastPrice must be greater than 0")
	}
	if len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	// ProductID is the primary key; refuse to overwrite an existing record
	if _, err := h.repo.FindByID(ctx, cmd.ProductID); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing product: %w", err)
	}

	product := &domain.Product{
		ProductID:   cmd.ProductID,
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		Quantity:    cmd.Quantity,
		LastPrice:   cmd.LastPrice,
	}

	if err := h.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
