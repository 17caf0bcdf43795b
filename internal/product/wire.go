//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"

	httpdelivery "github.com/tair/warehouse-inbound/internal/product/delivery/http"
	"github.com/tair/warehouse-inbound/internal/product/usecase/command"
	"github.com/tair/warehouse-inbound/internal/product/usecase/query"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(store kvstore.Store) (*httpdelivery.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateProductHandler,
		command.NewUpdateProductHandler,
		command.NewDeleteProductHandler,
		query.NewGetProductHandler,
		query.NewListProductsHandler,
		httpdelivery.NewProductHandlerWithDI,
	)
	return nil, nil
}
