package query

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tair/warehouse-inbound/internal/product/domain"
)

// ListProductsQuery represents the query to list products.
//
//   - Search: case-insensitive substring across Name, Description, Category
//   - Filter: exact Category match
//   - OrderBy: field name, "-" prefix for descending, string comparison
type ListProductsQuery struct {
	Search  string
	Filter  string
	OrderBy string
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) ([]domain.Product, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if query.Filter != "" {
		filtered := products[:0]
		for _, p := range products {
			if p.Category == query.Filter {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	if query.Search != "" {
		needle := strings.ToLower(query.Search)
		matched := products[:0]
		for _, p := range products {
			haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
			if strings.Contains(haystack, needle) {
				matched = append(matched, p)
			}
		}
		products = matched
	}

	if query.OrderBy != "" {
		field := query.OrderBy
		descending := false
		if strings.HasPrefix(field, "-") {
			descending = true
			field = field[1:]
		}

		sort.SliceStable(products, func(i, j int) bool {
			a, b := fieldValue(products[i], field), fieldValue(products[j], field)
			if descending {
				return a > b
			}
			return a < b
		})
	}

	return products, nil
}

// fieldValue stringifies the named field; an unknown field compares as the
// empty string so incomplete records sort predictably instead of failing.
func fieldValue(p domain.Product, field string) string {
	switch field {
	case "ProductID":
		return p.ProductID
	case "Name":
		return p.Name
	case "Description":
		return p.Description
	case "Category":
		return p.Category
	case "Quantity":
		return strconv.FormatInt(p.Quantity, 10)
	case "LastPrice":
		return strconv.FormatFloat(p.LastPrice, 'f', -1, 64)
	default:
		return ""
	}
}
