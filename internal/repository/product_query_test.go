package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
)

func TestBuildSearchQueryAll(t *testing.T) {
	q, err := buildSearchQuery(search.All(), 24, 12)
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE TRUE", q.count)
	assert.Contains(t, q.find, "ORDER BY id")
	assert.Equal(t, 24, q.args["skip"])
	assert.Equal(t, 12, q.args["limit"])
	assert.Equal(t, model.DecimalPattern, q.args["price_pattern"])
}

func TestBuildSearchQuerySubstring(t *testing.T) {
	q, err := buildSearchQuery(search.Substring("a.b"), 0, 12)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT COUNT(*) FROM products WHERE ((doc->>'title') ~* @p1 OR (doc->>'variantSku') ~* @p2)",
		q.count)
	assert.Equal(t, `a\.b`, q.args["p1"])
	assert.Equal(t, `a\.b`, q.args["p2"])
}

func TestBuildSearchQueryCriteria(t *testing.T) {
	maxPrice := search.Amount(50)
	f := search.Compile(search.Criteria{MaxPrice: &maxPrice, Category: "electronics", SKU: "X-1"})

	q, err := buildSearchQuery(f, 0, 32)
	require.NoError(t, err)

	assert.Contains(t, q.count, "jsonb_typeof(doc->'variantPrice')")
	assert.Contains(t, q.count, "<= @p1::numeric")
	assert.Contains(t, q.count, "(doc->>'title') ~* @p2 OR (doc->>'type') ~* @p3 OR (doc->>'variantSku') ~* @p4")
	assert.Contains(t, q.count, "(doc->>'variantSku') ~* @p5")
	assert.Equal(t, 50.0, q.args["p1"])
	assert.Equal(t, "electronic", q.args["p2"])
	assert.Equal(t, "X-1", q.args["p5"])
}

func TestBuildSearchQueryRejectsUnknownField(t *testing.T) {
	_, err := buildSearchQuery(search.Regex(search.Field("vendor"), "x"), 0, 1)
	assert.Error(t, err)
}

func TestBuildSearchQueryEmptyGroups(t *testing.T) {
	q, err := buildSearchQuery(search.And(search.Or()), 0, 1)
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE (FALSE)", q.count)
}
