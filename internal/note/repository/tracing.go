package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/warehouse-inbound/internal/note/domain"
)

var tracer = otel.Tracer("note-repository")

// TracingNoteRepository decorates a NoteRepository with tracing spans
type TracingNoteRepository struct {
	inner domain.NoteRepository
}

// NewTracingNoteRepository wraps a repository with tracing
func NewTracingNoteRepository(inner domain.NoteRepository) *TracingNoteRepository {
	return &TracingNoteRepository{inner: inner}
}

func (r *TracingNoteRepository) Save(ctx context.Context, note *domain.InboundNote) error {
	ctx, span := tracer.Start(ctx, "repository.Save",
		trace.WithAttributes(
			attribute.String("note.id", note.NoteID),
			attribute.Int("note.items", len(note.Products)),
		),
	)
	defer span.End()

	err := r.inner.Save(ctx, note)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingNoteRepository) FindByID(ctx context.Context, id string) (*domain.InboundNote, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.String("note.id", id)),
	)
	defer span.End()

	note, err := r.inner.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("note.items", len(note.Products)))
	return note, nil
}

func (r *TracingNoteRepository) FindAll(ctx context.Context) ([]domain.InboundNote, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	notes, err := r.inner.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(notes)))
	return notes, nil
}

func (r *TracingNoteRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "repository.UpdateFields",
		trace.WithAttributes(
			attribute.String("note.id", id),
			attribute.Int("fields.count", len(fields)),
		),
	)
	defer span.End()

	err := r.inner.UpdateFields(ctx, id, fields)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingNoteRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.String("note.id", id)),
	)
	defer span.End()

	err := r.inner.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
