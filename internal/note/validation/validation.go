// Package validation performs structural checks on note payloads. It collects
// every problem instead of failing on the first one, and it never touches
// storage: whether a referenced product exists is discovered later, during
// the adjustment phase.
package validation

import (
	"fmt"

	"github.com/tair/warehouse-inbound/internal/note/domain"
)

// LineItem is a raw line-item payload. Pointer fields distinguish a missing
// attribute from a zero value.
type LineItem struct {
	ProductID *string `json:"ProductID"`
	Quantity  *int64  `json:"Quantity"`
}

// CreateNote validates a note-creation payload
func CreateNote(date *string, products []LineItem) []string {
	var msgs []string
	if date == nil || *date == "" {
		msgs = append(msgs, "Date is required")
	}
	return append(msgs, lineItems(products)...)
}

// UpdateNote validates a note-update payload. Date is optional on update; if
// absent the stored value is left unchanged.
func UpdateNote(products []LineItem) []string {
	return lineItems(products)
}

func lineItems(products []LineItem) []string {
	var msgs []string
	if len(products) == 0 {
		msgs = append(msgs, "Products is required and cannot be empty")
		return msgs
	}

	for i, p := range products {
		if p.ProductID == nil || p.Quantity == nil {
			msgs = append(msgs, fmt.Sprintf("Invalid product format at index %d", i))
			continue
		}
		if *p.Quantity <= 0 {
			msgs = append(msgs, fmt.Sprintf(
				"Invalid quantity for product %s. Quantity must be greater than 0.", *p.ProductID))
		}
	}
	return msgs
}

// Items converts validated payloads into domain line items. Call only after
// validation reported no problems.
func Items(products []LineItem) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(products))
	for _, p := range products {
		items = append(items, domain.LineItem{
			ProductID: *p.ProductID,
			Quantity:  *p.Quantity,
		})
	}
	return items
}
