package note

import (
	"github.com/google/wire"

	"github.com/tair/warehouse-inbound/internal/note/domain"
	"github.com/tair/warehouse-inbound/internal/note/repository"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
)

// ProvideNoteRepository provides the traced note repository
func ProvideNoteRepository(store kvstore.Store) domain.NoteRepository {
	return repository.NewTracingNoteRepository(repository.NewKVNoteRepository(store))
}

// RepositorySet is the wire provider set for the repository layer
var RepositorySet = wire.NewSet(
	ProvideNoteRepository,
)
