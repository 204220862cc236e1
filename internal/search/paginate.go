package search

import (
	"context"
	"math"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
)

// maxSkip bounds the offset sent to stores.
const maxSkip = math.MaxInt32

// Store executes filters against the product collection.
type Store interface {
	// SearchProducts returns the products matching f in the store's natural
	// order, skipping skip and returning at most limit, together with the
	// number of all products matching f.
	SearchProducts(ctx context.Context, f Filter, skip, limit int) ([]model.ProductSummary, int64, error)
}

// Page is the paginated result envelope.
type Page struct {
	Products    []model.ProductSummary `json:"products"`
	TotalPages  int64                  `json:"totalPages"`
	CurrentPage int                    `json:"currentPage"`
	TotalItems  int64                  `json:"totalItems"`
}

// Paginator executes filters one page at a time.
type Paginator struct {
	store    Store
	maxLimit int
}

// NewPaginator creates a paginator over store. A positive maxLimit caps the
// page size.
func NewPaginator(store Store, maxLimit int) *Paginator {
	return &Paginator{store: store, maxLimit: maxLimit}
}

// Paginate returns page (1-based, values below 1 are treated as 1) of the
// products matching f.
func (p *Paginator) Paginate(ctx context.Context, f Filter, page, limit int) (Page, error) {
	if limit < 1 {
		return Page{}, &ValidationError{Field: "limit", Reason: "must be at least 1"}
	}
	if p.maxLimit > 0 && limit > p.maxLimit {
		return Page{}, &ValidationError{Field: "limit", Reason: "exceeds the maximum page size"}
	}

	page = max(page, 1)
	if page-1 > maxSkip/limit {
		return Page{}, &ValidationError{Field: "page", Reason: "out of range"}
	}
	skip := (page - 1) * limit

	items, total, err := p.store.SearchProducts(ctx, f, skip, limit)
	if err != nil {
		return Page{}, &StoreError{Op: "search products", Err: err}
	}

	if items == nil {
		items = []model.ProductSummary{}
	}
	if len(items) > limit {
		items = items[:limit]
	}

	return Page{
		Products:    items,
		TotalPages:  TotalPages(total, limit),
		CurrentPage: page,
		TotalItems:  total,
	}, nil
}

// TotalPages returns ceil(total/limit), 0 when there is nothing to show.
func TotalPages(total int64, limit int) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}
