package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tair/warehouse-inbound/internal/note/domain"
	"github.com/tair/warehouse-inbound/internal/note/ledger"
	"github.com/tair/warehouse-inbound/internal/note/validation"
	"github.com/tair/warehouse-inbound/kafka"
)

// CreateNoteCommand represents the command to create an inbound note
type CreateNoteCommand struct {
	Date     *string
	Products []validation.LineItem
}

// CreateNoteHandler handles note creation
type CreateNoteHandler struct {
	repo      domain.NoteRepository
	adjuster  ledger.Adjuster
	publisher EventPublisher
}

// NewCreateNoteHandler creates a new create note handler
func NewCreateNoteHandler(repo domain.NoteRepository, adjuster ledger.Adjuster, publisher EventPublisher) *CreateNoteHandler {
	return &CreateNoteHandler{repo: repo, adjuster: adjuster, publisher: publisher}
}

// Handle executes the create note command: every line item's quantity is
// applied to the ledger before the note itself is persisted. An adjustment
// failure aborts immediately; increments already applied are not rolled back.
func (h *CreateNoteHandler) Handle(ctx context.Context, cmd CreateNoteCommand) (*domain.InboundNote, error) {
	if msgs := validation.CreateNote(cmd.Date, cmd.Products); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	items := validation.Items(cmd.Products)

	for _, item := range items {
		if err := h.adjuster.Adjust(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	note := &domain.InboundNote{
		NoteID:   uuid.NewString(),
		Date:     *cmd.Date,
		Products: items,
	}

	if err := h.repo.Save(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}

	publish(ctx, h.publisher, kafka.NoteEvent{
		EventType: kafka.EventTypeNoteCreated,
		NoteID:    note.NoteID,
		Date:      note.Date,
		Products:  note.Products,
	})

	return note, nil
}
