package repository

import (
	"context"
	"errors"

	"github.com/tair/warehouse-inbound/internal/note/domain"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
)

// KVNoteRepository stores inbound notes in a key-value collection keyed by
// NoteID.
type KVNoteRepository struct {
	store kvstore.Store
}

func NewKVNoteRepository(store kvstore.Store) *KVNoteRepository {
	return &KVNoteRepository{store: store}
}

func (r *KVNoteRepository) Save(ctx context.Context, note *domain.InboundNote) error {
	rec, err := kvstore.Encode(note)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, note.NoteID, rec)
}

func (r *KVNoteRepository) FindByID(ctx context.Context, id string) (*domain.InboundNote, error) {
	rec, err := r.store.Get(ctx, id)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var note domain.InboundNote
	if err := kvstore.Decode(rec, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *KVNoteRepository) FindAll(ctx context.Context) ([]domain.InboundNote, error) {
	records, err := r.store.Scan(ctx)
	if err != nil {
		return nil, err
	}

	notes := make([]domain.InboundNote, 0, len(records))
	for _, rec := range records {
		var note domain.InboundNote
		if err := kvstore.Decode(rec, &note); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func (r *KVNoteRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	err := r.store.Update(ctx, id, kvstore.Record(fields))
	if errors.Is(err, kvstore.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (r *KVNoteRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}
