package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inbound/internal/product/domain"
	"github.com/tair/warehouse-inbound/internal/product/repository"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
)

func newCatalog(t *testing.T) *ListProductsHandler {
	t.Helper()
	repo := repository.NewKVProductRepository(kvstore.NewMemoryStore())

	products := []domain.Product{
		{ProductID: "p1", Name: "Phone X", Description: "Flagship phone", Category: "electronics", Quantity: 4, LastPrice: 900},
		{ProductID: "p2", Name: "Desk Lamp", Description: "LED lamp", Category: "furniture", Quantity: 12, LastPrice: 30},
		{ProductID: "p3", Name: "Budget Phone", Description: "Entry level", Category: "electronics", Quantity: 9, LastPrice: 150},
		{ProductID: "p4", Name: "Charger", Description: "For phones", Category: "electronics", Quantity: 30, LastPrice: 15},
	}
	for i := range products {
		require.NoError(t, repo.Save(context.Background(), &products[i]))
	}
	return NewListProductsHandler(repo)
}

func names(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

// TestListProducts_All verifies an empty query returns everything.
func TestListProducts_All(t *testing.T) {
	handler := newCatalog(t)

	products, err := handler.Handle(context.Background(), ListProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

// TestListProducts_FilterIsExactCategory verifies filter matches the category
// verbatim.
func TestListProducts_FilterIsExactCategory(t *testing.T) {
	handler := newCatalog(t)

	products, err := handler.Handle(context.Background(), ListProductsQuery{Filter: "electronics"})
	require.NoError(t, err)
	assert.Len(t, products, 3)

	products, err = handler.Handle(context.Background(), ListProductsQuery{Filter: "Electronics"})
	require.NoError(t, err)
	assert.Empty(t, products, "filter is case sensitive")
}

// TestListProducts_SearchIsCaseInsensitive verifies substring search spans
// name, description and category.
func TestListProducts_SearchIsCaseInsensitive(t *testing.T) {
	handler := newCatalog(t)

	products, err := handler.Handle(context.Background(), ListProductsQuery{Search: "PHONE"})
	require.NoError(t, err)
	// Matches "Phone X", "Budget Phone" and the charger's "For phones"
	assert.Len(t, products, 3)
}

// TestListProducts_OrderByDescending verifies the "-" prefix reverses order.
func TestListProducts_OrderByDescending(t *testing.T) {
	handler := newCatalog(t)

	products, err := handler.Handle(context.Background(), ListProductsQuery{OrderBy: "-Name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Phone X", "Desk Lamp", "Charger", "Budget Phone"}, names(products))
}

// TestListProducts_OrderByNumericFieldComparesAsString verifies numeric
// fields sort by their decimal string form, so 12 sorts before 4.
func TestListProducts_OrderByNumericFieldComparesAsString(t *testing.T) {
	handler := newCatalog(t)

	products, err := handler.Handle(context.Background(), ListProductsQuery{OrderBy: "Quantity"})
	require.NoError(t, err)
	// "12" < "30" < "4" < "9" in string order
	assert.Equal(t, []string{"Desk Lamp", "Charger", "Phone X", "Budget Phone"}, names(products))
}

// TestListProducts_CombinedQuery verifies filter, search and orderBy compose.
func TestListProducts_CombinedQuery(t *testing.T) {
	handler := newCatalog(t)

	products, err := handler.Handle(context.Background(), ListProductsQuery{
		Filter:  "electronics",
		Search:  "phone",
		OrderBy: "-Name",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Phone X", "Charger", "Budget Phone"}, names(products))
}
