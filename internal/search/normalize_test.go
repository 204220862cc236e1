package search_test

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
)

func TestEscapePatternMatchesLiterally(t *testing.T) {
	inputs := []string{
		"a.b", "c*", "d+", "e?", "^f", "g$", "{h}", "(i)", "j|k", "[l]", `m\n`,
		"(unclosed", "[", `\`, "a{2,}", ".*", "price: $9.99 (50% off)",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			pattern := search.EscapePattern(in)

			re, err := regexp.Compile("(?i)" + pattern)
			require.NoError(t, err)
			assert.True(t, re.MatchString("prefix "+in+" suffix"))
			assert.Equal(t, in, re.FindString(in))
		})
	}
}

func TestEscapePatternDoesNotBroadenMatch(t *testing.T) {
	f := search.Substring(".*")

	assert.False(t, f.Matches(model.Product{Title: "Anything at all"}))
	assert.True(t, f.Matches(model.Product{Title: "glob .* pattern"}))
}

func TestSubstring(t *testing.T) {
	t.Run("Should match title or sku ignoring case", func(t *testing.T) {
		f := search.Substring("usb")

		assert.True(t, f.Matches(model.Product{Title: "Braided USB-C Cable"}))
		assert.True(t, f.Matches(model.Product{VariantSKU: "CABLE-usb-01"}))
		assert.False(t, f.Matches(model.Product{Title: "Charger", Type: "usb accessories"}))
	})

	t.Run("Should match sku fragment", func(t *testing.T) {
		f := search.Substring("12345")

		assert.True(t, f.Matches(model.Product{VariantSKU: "SKU-12345-A"}))
	})

	t.Run("Should match everything on empty input", func(t *testing.T) {
		f := search.Substring("")

		assert.True(t, f.Matches(model.Product{}))
		out, err := json.Marshal(f)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(out))
	})

	t.Run("Should render query document", func(t *testing.T) {
		out, err := json.Marshal(search.Substring("a+b"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"$or":[
			{"title":{"$regex":"a\\+b","$options":"i"}},
			{"variantSku":{"$regex":"a\\+b","$options":"i"}}
		]}`, string(out))
	})
}
