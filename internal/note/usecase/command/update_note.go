package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/tair/warehouse-inbound/internal/note/domain"
	"github.com/tair/warehouse-inbound/internal/note/ledger"
	"github.com/tair/warehouse-inbound/internal/note/validation"
	"github.com/tair/warehouse-inbound/kafka"
)

// UpdateNoteCommand represents the command to replace a note's line items.
// Products is a full replacement of the stored list; Date is optional.
type UpdateNoteCommand struct {
	NoteID   string
	Date     *string
	Products []validation.LineItem
}

// UpdateNoteHandler reconciles a note's stored line items against the
// submitted replacement list.
type UpdateNoteHandler struct {
	repo      domain.NoteRepository
	adjuster  ledger.Adjuster
	publisher EventPublisher
}

// NewUpdateNoteHandler creates a new update note handler
func NewUpdateNoteHandler(repo domain.NoteRepository, adjuster ledger.Adjuster, publisher EventPublisher) *UpdateNoteHandler {
	return &UpdateNoteHandler{repo: repo, adjuster: adjuster, publisher: publisher}
}

// Handle executes the update note command.
//
// The transition from the stored list to the submitted one is reduced to the
// minimal set of signed ledger adjustments: one delta per product appearing
// in either list, zero deltas skipped. Deltas are applied sequentially and a
// failure aborts before the note record is rewritten; deltas already applied
// in the same call are not rolled back.
func (h *UpdateNoteHandler) Handle(ctx context.Context, cmd UpdateNoteCommand) (*domain.InboundNote, error) {
	current, err := h.repo.FindByID(ctx, cmd.NoteID)
	if err != nil {
		return nil, err
	}

	if msgs := validation.UpdateNote(cmd.Products); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	items := validation.Items(cmd.Products)

	oldQuantities := quantityByProduct(current.Products)
	newQuantities := quantityByProduct(items)

	for _, productID := range unionIDs(oldQuantities, newQuantities) {
		delta := newQuantities[productID] - oldQuantities[productID]
		if delta == 0 {
			continue
		}
		if err := h.adjuster.Adjust(ctx, productID, delta); err != nil {
			return nil, err
		}
	}

	// Full replacement of the line-item list; Date only when supplied
	fields := map[string]any{"Products": items}
	if cmd.Date != nil {
		fields["Date"] = *cmd.Date
		current.Date = *cmd.Date
	}

	if err := h.repo.UpdateFields(ctx, cmd.NoteID, fields); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	current.Products = items

	publish(ctx, h.publisher, kafka.NoteEvent{
		EventType: kafka.EventTypeNoteUpdated,
		NoteID:    current.NoteID,
		Date:      current.Date,
		Products:  current.Products,
	})

	return current, nil
}

// quantityByProduct builds the ProductID to Quantity lookup. When an ID
// repeats within one list, the later occurrence wins; duplicates are not
// summed.
func quantityByProduct(items []domain.LineItem) map[string]int64 {
	m := make(map[string]int64, len(items))
	for _, item := range items {
		m[item.ProductID] = item.Quantity
	}
	return m
}

// unionIDs returns every product ID appearing in either map, sorted so the
// adjustment sequence is deterministic.
func unionIDs(old, updated map[string]int64) []string {
	seen := make(map[string]struct{}, len(old)+len(updated))
	for id := range old {
		seen[id] = struct{}{}
	}
	for id := range updated {
		seen[id] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
