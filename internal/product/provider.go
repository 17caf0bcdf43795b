package product

import (
	"github.com/google/wire"

	"github.com/tair/warehouse-inbound/internal/product/domain"
	"github.com/tair/warehouse-inbound/internal/product/repository"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
)

// ProvideProductRepository provides the traced product repository
func ProvideProductRepository(store kvstore.Store) domain.ProductRepository {
	return repository.NewTracingProductRepository(repository.NewKVProductRepository(store))
}

// RepositorySet is the wire provider set for the repository layer
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)
