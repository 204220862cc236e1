package search_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
)

func seededStore(n int) *sliceStore {
	s := &sliceStore{}
	for i := range n {
		s.products = append(s.products, product(fmt.Sprintf("Item %02d", i), fmt.Sprintf("SKU-%d", i), "", model.NumberPrice(float64(i))))
	}
	return s
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{100, 32, 4},
		{5, 1, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, search.TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestPaginate(t *testing.T) {
	ctx := context.Background()
	store := seededStore(25)
	p := search.NewPaginator(store, 100)

	t.Run("Should window results", func(t *testing.T) {
		for limit := 1; limit <= 30; limit++ {
			for page := 1; page <= 4; page++ {
				res, err := p.Paginate(ctx, search.All(), page, limit)
				require.NoError(t, err)

				assert.LessOrEqual(t, len(res.Products), limit)
				assert.EqualValues(t, 25, res.TotalItems)
				assert.Equal(t, search.TotalPages(25, limit), res.TotalPages)
				assert.Equal(t, page, res.CurrentPage)
			}
		}
	})

	t.Run("Should return the requested slice", func(t *testing.T) {
		res, err := p.Paginate(ctx, search.All(), 3, 10)
		require.NoError(t, err)

		assert.Equal(t, []string{"Item 20", "Item 21", "Item 22", "Item 23", "Item 24"}, titles(res.Products))
		assert.EqualValues(t, 3, res.TotalPages)
	})

	t.Run("Should clamp page below one", func(t *testing.T) {
		res, err := p.Paginate(ctx, search.All(), -4, 12)
		require.NoError(t, err)

		assert.Equal(t, 1, res.CurrentPage)
		assert.Equal(t, "Item 00", res.Products[0].Title)
	})

	t.Run("Should return empty page beyond the end", func(t *testing.T) {
		res, err := p.Paginate(ctx, search.All(), 9, 12)
		require.NoError(t, err)

		assert.NotNil(t, res.Products)
		assert.Empty(t, res.Products)
		assert.EqualValues(t, 3, res.TotalPages)
	})

	t.Run("Should report zero pages without matches", func(t *testing.T) {
		res, err := p.Paginate(ctx, search.Substring("nothing like this"), 1, 12)
		require.NoError(t, err)

		assert.Zero(t, res.TotalItems)
		assert.Zero(t, res.TotalPages)
	})

	t.Run("Should be idempotent", func(t *testing.T) {
		first, err := p.Paginate(ctx, search.Substring("item 1"), 1, 4)
		require.NoError(t, err)
		second, err := p.Paginate(ctx, search.Substring("item 1"), 1, 4)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestPaginateRejectsInvalidLimit(t *testing.T) {
	p := search.NewPaginator(seededStore(3), 50)

	for _, limit := range []int{0, -1, 51} {
		_, err := p.Paginate(context.Background(), search.All(), 1, limit)

		var validationErr *search.ValidationError
		require.ErrorAs(t, err, &validationErr, "limit=%d", limit)
		assert.Equal(t, "limit", validationErr.Field)
	}
}

func TestPaginateZeroMaxLimitDisablesCap(t *testing.T) {
	p := search.NewPaginator(seededStore(3), 0)

	page, err := p.Paginate(context.Background(), search.All(), 1, 1000)
	require.NoError(t, err)

	assert.EqualValues(t, 3, page.TotalItems)
	assert.EqualValues(t, 1, page.TotalPages)
}

func TestPaginateRejectsHugePage(t *testing.T) {
	p := search.NewPaginator(seededStore(3), 0)

	_, err := p.Paginate(context.Background(), search.All(), 1<<40, 1000)

	var validationErr *search.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "page", validationErr.Field)
}

func TestPaginateWrapsStoreErrors(t *testing.T) {
	cause := errors.New("connection reset")
	p := search.NewPaginator(&sliceStore{err: cause}, 100)

	_, err := p.Paginate(context.Background(), search.All(), 1, 12)

	var storeErr *search.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, cause)
}
