package search_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
)

// sliceStore evaluates filters over an in-memory slice.
type sliceStore struct {
	products []model.Product
	err      error
}

func (s *sliceStore) SearchProducts(_ context.Context, f search.Filter, skip, limit int) ([]model.ProductSummary, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}

	var (
		items []model.ProductSummary
		total int64
	)
	for _, p := range s.products {
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

// fakeCompleter returns a canned reply and counts calls.
type fakeCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	prompts []string
}

func (c *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.prompts = append(c.prompts, prompt)
	return c.reply, c.err
}

func product(title, sku, typ string, price model.Price) model.Product {
	return model.Product{
		ID:           uuid.Must(uuid.NewV7()),
		Title:        title,
		VariantSKU:   sku,
		Type:         typ,
		VariantPrice: price,
	}
}

func titles(items []model.ProductSummary) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}
