package repository

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
	"github.com/tuanvumaihuynh/catalog-search/internal/storage/db"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	products []model.Product
}

// NewMemoryProductRepository returns a repository holding products in
// memory, ordered by id like the database table.
func NewMemoryProductRepository(products []model.Product) ProductRepository {
	r := &memoryProductRepository{}
	r.insert(products)
	return r
}

// WithDB returns r: the memory repository has no transactions to join.
func (r *memoryProductRepository) WithDB(db.DB) ProductRepository {
	return r
}

func (r *memoryProductRepository) SearchProducts(ctx context.Context, f search.Filter, skip, limit int) ([]model.ProductSummary, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		items []model.ProductSummary
		total int64
	)
	for _, p := range r.products {
		if !f.Matches(p) {
			continue
		}
		if total >= int64(skip) && len(items) < limit {
			items = append(items, p.Summary())
		}
		total++
	}

	return items, total, nil
}

func (r *memoryProductRepository) InsertProducts(_ context.Context, products []model.Product) (int64, error) {
	r.insert(products)
	return int64(len(products)), nil
}

func (r *memoryProductRepository) DeleteAllProducts(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.products))
	r.products = nil
	return n, nil
}

func (r *memoryProductRepository) insert(products []model.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, products...)
	slices.SortStableFunc(r.products, func(a, b model.Product) int {
		return bytes.Compare(a.ID[:], b.ID[:])
	})
}
