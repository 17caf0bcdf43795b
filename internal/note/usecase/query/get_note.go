package query

import (
	"context"

	"github.com/tair/warehouse-inbound/internal/note/domain"
)

// GetNoteQuery represents the query to get a note by ID
type GetNoteQuery struct {
	NoteID string
}

// GetNoteHandler handles get note query
type GetNoteHandler struct {
	repo domain.NoteRepository
}

// NewGetNoteHandler creates a new get note handler
func NewGetNoteHandler(repo domain.NoteRepository) *GetNoteHandler {
	return &GetNoteHandler{repo: repo}
}

// Handle executes the get note query
func (h *GetNoteHandler) Handle(ctx context.Context, query GetNoteQuery) (*domain.InboundNote, error) {
	return h.repo.FindByID(ctx, query.NoteID)
}
