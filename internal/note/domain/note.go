package domain

import (
	"context"
	"errors"
	"strings"
)

// LineItem is one quantity addition against a product within a note. The
// ProductID is a reference only; nothing enforces that the product exists
// until an adjustment is attempted.
type LineItem struct {
	ProductID string `json:"ProductID"`
	Quantity  int64  `json:"Quantity"`
}

// InboundNote is a receiving document recording quantity additions.
type InboundNote struct {
	NoteID   string     `json:"NoteID"`
	Date     string     `json:"Date"`
	Products []LineItem `json:"Products"`
}

// ErrNotFound is returned when no note exists under the requested ID
var ErrNotFound = errors.New("note not found")

// ValidationError carries every structural problem found in one payload so a
// caller can fix them in a single round trip.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NoteRepository defines the contract for note data access
type NoteRepository interface {
	Save(ctx context.Context, note *InboundNote) error
	FindByID(ctx context.Context, id string) (*InboundNote, error)
	FindAll(ctx context.Context) ([]InboundNote, error)
	// UpdateFields replaces only the named attributes of the stored record.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}
