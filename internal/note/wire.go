//go:build wireinject
// +build wireinject

package note

import (
	"github.com/google/wire"

	httpdelivery "github.com/tair/warehouse-inbound/internal/note/delivery/http"
	"github.com/tair/warehouse-inbound/internal/note/export"
	"github.com/tair/warehouse-inbound/internal/note/ledger"
	"github.com/tair/warehouse-inbound/internal/note/usecase/command"
	"github.com/tair/warehouse-inbound/internal/note/usecase/query"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(
	store kvstore.Store,
	adjuster ledger.Adjuster,
	publisher command.EventPublisher,
	exporter *export.Exporter,
) (*httpdelivery.NoteHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateNoteHandler,
		command.NewUpdateNoteHandler,
		command.NewDeleteNoteHandler,
		query.NewGetNoteHandler,
		query.NewListNotesHandler,
		httpdelivery.NewNoteHandlerWithDI,
	)
	return nil, nil
}
