package command

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-inbound/internal/product/domain"
)

// UpdateProductCommand represents a partial product update. Nil fields are
// left unchanged. Quantity is a signed delta against the stored value, not a
// replacement; every other field replaces the stored attribute directly.
type UpdateProductCommand struct {
	ProductID   string
	Name        *string
	Description *string
	Category    *string
	Quantity    *int64
	LastPrice   *float64
}

// UpdateProductHandler handles product updates and quantity adjustments
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	var msgs []string
	if cmd.Name != nil && *cmd.Name == "" {
		msgs = append(msgs, "Name cannot be empty")
	}
	if cmd.Category != nil && *cmd.Category == "" {
		msgs = append(msgs, "Category cannot be empty")
	}
	if cmd.LastPrice != nil && *cmd.LastPrice <= 0 {
		msgs = append(msgs, "LastPrice must be greater than 0")
	}
	if len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	// Only the attributes actually supplied are written back
	fields := make(map[string]any)

	if cmd.Name != nil {
		product.Name = *cmd.Name
		fields["Name"] = *cmd.Name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
		fields["Description"] = *cmd.Description
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
		fields["Category"] = *cmd.Category
	}
	if cmd.LastPrice != nil {
		product.LastPrice = *cmd.LastPrice
		fields["LastPrice"] = *cmd.LastPrice
	}

	if cmd.Quantity != nil {
		newQuantity := product.Quantity + *cmd.Quantity
		if *cmd.Quantity < 0 && newQuantity < 0 {
			return nil, fmt.Errorf("%w: product %s has %d, adjustment %d",
				domain.ErrInsufficientQuantity, cmd.ProductID, product.Quantity, *cmd.Quantity)
		}
		product.Quantity = newQuantity
		fields["Quantity"] = newQuantity
	}

	if len(fields) == 0 {
		return nil, &domain.ValidationError{Messages: []string{"no fields to update"}}
	}

	if err := h.repo.UpdateFields(ctx, cmd.ProductID, fields); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
