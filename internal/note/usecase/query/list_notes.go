package query

import (
	"context"
	"fmt"

	"github.com/tair/warehouse-inbound/internal/note/domain"
)

// ListNotesQuery represents the query to list all notes
type ListNotesQuery struct{}

// ListNotesHandler handles list notes query
type ListNotesHandler struct {
	repo domain.NoteRepository
}

// NewListNotesHandler creates a new list notes handler
func NewListNotesHandler(repo domain.NoteRepository) *ListNotesHandler {
	return &ListNotesHandler{repo: repo}
}

// Handle executes the list notes query
func (h *ListNotesHandler) Handle(ctx context.Context, _ ListNotesQuery) ([]domain.InboundNote, error) {
	notes, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}
