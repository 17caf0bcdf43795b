package repository

import (
	"context"
	"errors"

	"github.com/tair/warehouse-inbound/internal/product/domain"
	"github.com/tair/warehouse-inbound/pkg/kvstore"
)

// KVProductRepository stores products in a key-value collection keyed by
// ProductID.
type KVProductRepository struct {
	store kvstore.Store
}

func NewKVProductRepository(store kvstore.Store) *KVProductRepository {
	return &KVProductRepository{store: store}
}

func (r *KVProductRepository) Save(ctx context.Context, product *domain.Product) error {
	rec, err := kvstore.Encode(product)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, product.ProductID, rec)
}

func (r *KVProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	rec, err := r.store.Get(ctx, id)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := kvstore.Decode(rec, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *KVProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	records, err := r.store.Scan(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		var product domain.Product
		if err := kvstore.Decode(rec, &product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *KVProductRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	err := r.store.Update(ctx, id, kvstore.Record(fields))
	if errors.Is(err, kvstore.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (r *KVProductRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}
