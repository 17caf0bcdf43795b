package kafka

import (
	"time"

	"github.com/tair/warehouse-inbound/internal/note/domain"
)

// NoteEvent represents an inbound-note lifecycle event
type NoteEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	NoteID    string            `json:"note_id"`
	Date      string            `json:"date,omitempty"`
	Products  []domain.LineItem `json:"products,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Event types
const (
	EventTypeNoteCreated = "note.created"
	EventTypeNoteUpdated = "note.updated"
	EventTypeNoteDeleted = "note.deleted"
)

// Kafka topics
const (
	TopicInboundNotes = "inbound-notes"
)
