package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inbound/internal/product/domain"
	"github.com/tair/warehouse-inbound/internal/product/repository"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
)

func newTestRepo() domain.ProductRepository {
	return repository.NewKVProductRepository(kvstore.NewMemoryStore())
}

func strPtr(s string) *string   { return &s }
func i64Ptr(n int64) *int64     { return &n }
func f64Ptr(f float64) *float64 { return &f }

func seedProduct(t *testing.T, repo domain.ProductRepository, id string, quantity int64) {
	t.Helper()
	err := repo.Save(context.Background(), &domain.Product{
		ProductID: id,
		Name:      "Seed " + id,
		Category:  "general",
		Quantity:  quantity,
		LastPrice: 9.99,
	})
	require.NoError(t, err)
}

// TestCreateProduct verifies the happy path persists the product.
func TestCreateProduct(t *testing.T) {
	repo := newTestRepo()
	handler := NewCreateProductHandler(repo)

	product, err := handler.Handle(context.Background(), CreateProductCommand{
		ProductID: "w1",
		Name:      "Widget",
		Category:  "hardware",
		Quantity:  10,
		LastPrice: 4.5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), product.Quantity)

	stored, err := repo.FindByID(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", stored.Name)
}

// TestCreateProduct_CollectsAllValidationErrors verifies every problem is
// reported in one response, not just the first.
func TestCreateProduct_CollectsAllValidationErrors(t *testing.T) {
	handler := NewCreateProductHandler(newTestRepo())

	_, err := handler.Handle(context.Background(), CreateProductCommand{
		Quantity:  -1,
		LastPrice: 0,
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages, 5)
	assert.Contains(t, verr.Messages, "ProductID is required")
	assert.Contains(t, verr.Messages, "Quantity cannot be negative")
	assert.Contains(t, verr.Messages, "LastPrice must be greater than 0")
}

// TestCreateProduct_DuplicateID verifies an existing ProductID is refused.
func TestCreateProduct_DuplicateID(t *testing.T) {
	repo := newTestRepo()
	handler := NewCreateProductHandler(repo)
	seedProduct(t, repo, "w1", 3)

	_, err := handler.Handle(context.Background(), CreateProductCommand{
		ProductID: "w1",
		Name:      "Other",
		Category:  "hardware",
		LastPrice: 1,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

// TestUpdateProduct_QuantityIsDelta verifies a submitted Quantity adds to the
// stored value instead of replacing it.
func TestUpdateProduct_QuantityIsDelta(t *testing.T) {
	repo := newTestRepo()
	handler := NewUpdateProductHandler(repo)
	seedProduct(t, repo, "w1", 10)

	product, err := handler.Handle(context.Background(), UpdateProductCommand{
		ProductID: "w1",
		Quantity:  i64Ptr(-4),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), product.Quantity)

	stored, err := repo.FindByID(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), stored.Quantity)
}

// TestUpdateProduct_RejectsOverdraw verifies a reduction below zero is
// rejected and the stored quantity stays untouched.
func TestUpdateProduct_RejectsOverdraw(t *testing.T) {
	repo := newTestRepo()
	handler := NewUpdateProductHandler(repo)
	seedProduct(t, repo, "w1", 3)

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ProductID: "w1",
		Quantity:  i64Ptr(-5),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	stored, err := repo.FindByID(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.Quantity, "rejected adjustment must not change the stored value")
}

// TestUpdateProduct_PartialFields verifies only supplied fields change.
func TestUpdateProduct_PartialFields(t *testing.T) {
	repo := newTestRepo()
	handler := NewUpdateProductHandler(repo)
	seedProduct(t, repo, "w1", 7)

	product, err := handler.Handle(context.Background(), UpdateProductCommand{
		ProductID: "w1",
		Name:      strPtr("Renamed"),
		LastPrice: f64Ptr(12.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", product.Name)
	assert.Equal(t, 12.5, product.LastPrice)
	assert.Equal(t, int64(7), product.Quantity, "quantity untouched when not supplied")
	assert.Equal(t, "general", product.Category)
}

// TestUpdateProduct_NoFields verifies an empty update payload is rejected.
func TestUpdateProduct_NoFields(t *testing.T) {
	repo := newTestRepo()
	handler := NewUpdateProductHandler(repo)
	seedProduct(t, repo, "w1", 7)

	_, err := handler.Handle(context.Background(), UpdateProductCommand{ProductID: "w1"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "no fields to update")
}

// TestUpdateProduct_Missing verifies an unknown product reports not found.
func TestUpdateProduct_Missing(t *testing.T) {
	handler := NewUpdateProductHandler(newTestRepo())

	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ProductID: "ghost",
		Quantity:  i64Ptr(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestDeleteProduct verifies deletion removes the record.
func TestDeleteProduct(t *testing.T) {
	repo := newTestRepo()
	handler := NewDeleteProductHandler(repo)
	seedProduct(t, repo, "w1", 1)

	require.NoError(t, handler.Handle(context.Background(), DeleteProductCommand{ProductID: "w1"}))

	_, err := repo.FindByID(context.Background(), "w1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
