package command

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-inbound/internal/note/domain"
	"github.com/tair/warehouse-inbound/internal/note/ledger"
	"github.com/tair/warehouse-inbound/kafka"
)

// DeleteNoteCommand represents the command to delete a note
type DeleteNoteCommand struct {
	NoteID string
}

// DeleteNoteHandler handles note deletion
type DeleteNoteHandler struct {
	repo      domain.NoteRepository
	adjuster  ledger.Adjuster
	publisher EventPublisher
}

// NewDeleteNoteHandler creates a new delete note handler
func NewDeleteNoteHandler(repo domain.NoteRepository, adjuster ledger.Adjuster, publisher EventPublisher) *DeleteNoteHandler {
	return &DeleteNoteHandler{repo: repo, adjuster: adjuster, publisher: publisher}
}

// Handle executes the delete note command: every stored line item is
// reverted against the ledger before the record is removed. A reversal
// failure aborts with the note still in place; reversals already applied are
// not compensated.
func (h *DeleteNoteHandler) Handle(ctx context.Context, cmd DeleteNoteCommand) error {
	note, err := h.repo.FindByID(ctx, cmd.NoteID)
	if err != nil {
		return err
	}

	for _, item := range note.Products {
		if err := h.adjuster.Adjust(ctx, item.ProductID, -item.Quantity); err != nil {
			return err
		}
	}

	if err := h.repo.Delete(ctx, cmd.NoteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	publish(ctx, h.publisher, kafka.NoteEvent{
		EventType: kafka.EventTypeNoteDeleted,
		NoteID:    note.NoteID,
	})

	return nil
}
