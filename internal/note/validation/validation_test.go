package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

// TestCreateNote_Valid verifies a well-formed payload passes.
func TestCreateNote_Valid(t *testing.T) {
	msgs := CreateNote(strPtr("2026-08-01"), []LineItem{
		{ProductID: strPtr("p1"), Quantity: i64Ptr(5)},
	})
	assert.Empty(t, msgs)
}

// TestCreateNote_CollectsAllProblems verifies every problem is reported in a
// single pass.
func TestCreateNote_CollectsAllProblems(t *testing.T) {
	msgs := CreateNote(nil, []LineItem{
		{ProductID: strPtr("p1"), Quantity: i64Ptr(0)},
		{ProductID: nil, Quantity: i64Ptr(3)},
		{ProductID: strPtr("p3"), Quantity: i64Ptr(-2)},
	})

	assert.Equal(t, []string{
		"Date is required",
		"Invalid quantity for product p1. Quantity must be greater than 0.",
		"Invalid product format at index 1",
		"Invalid quantity for product p3. Quantity must be greater than 0.",
	}, msgs)
}

// TestCreateNote_EmptyProducts verifies an empty line-item list is refused.
func TestCreateNote_EmptyProducts(t *testing.T) {
	msgs := CreateNote(strPtr("2026-08-01"), nil)
	assert.Equal(t, []string{"Products is required and cannot be empty"}, msgs)
}

// TestUpdateNote_DateOptional verifies update validation has no date
// requirement.
func TestUpdateNote_DateOptional(t *testing.T) {
	msgs := UpdateNote([]LineItem{
		{ProductID: strPtr("p1"), Quantity: i64Ptr(1)},
	})
	assert.Empty(t, msgs)
}

// TestItems converts validated payloads to domain line items in order.
func TestItems(t *testing.T) {
	items := Items([]LineItem{
		{ProductID: strPtr("a"), Quantity: i64Ptr(2)},
		{ProductID: strPtr("b"), Quantity: i64Ptr(7)},
	})

	assert.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ProductID)
	assert.Equal(t, int64(7), items[1].Quantity)
}
