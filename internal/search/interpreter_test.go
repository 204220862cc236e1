package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-search/internal/search"
)

func TestInterpret(t *testing.T) {
	t.Run("Should parse fenced reply", func(t *testing.T) {
		completer := &fakeCompleter{reply: "```json\n{\"category\": \"electronics\", \"maxPrice\": 50, \"keywords\": [\"charger\"]}\n```"}

		c, err := search.NewInterpreter(completer).Interpret(context.Background(), "chargers under 50")
		require.NoError(t, err)

		assert.Equal(t, "electronics", c.Category)
		require.NotNil(t, c.MaxPrice)
		assert.Equal(t, search.Amount(50), *c.MaxPrice)
		assert.Nil(t, c.MinPrice)
		assert.Equal(t, search.Keywords{"charger"}, c.Keywords)
		assert.Empty(t, c.SKU)

		require.Len(t, completer.prompts, 1)
		assert.Contains(t, completer.prompts[0], `"chargers under 50"`)
		assert.Contains(t, completer.prompts[0], "Only respond with a JSON object")
	})

	t.Run("Should accept numeric strings and a bare keyword", func(t *testing.T) {
		completer := &fakeCompleter{reply: `{"minPrice": "10", "maxPrice": "$25.5", "keywords": "lamp"}`}

		c, err := search.NewInterpreter(completer).Interpret(context.Background(), "lamp 10 to 25.5")
		require.NoError(t, err)

		assert.Equal(t, search.Amount(10), *c.MinPrice)
		assert.Equal(t, search.Amount(25.5), *c.MaxPrice)
		assert.Equal(t, search.Keywords{"lamp"}, c.Keywords)
	})

	t.Run("Should return translation error on malformed reply", func(t *testing.T) {
		for _, reply := range []string{
			"not json", `{"maxPrice": }`, `["a"]`, `{"maxPrice": "cheap"}`,
			`{"maxPrice": "NaN"}`, `{"minPrice": "Infinity"}`, `{"minPrice": "-Inf"}`,
		} {
			completer := &fakeCompleter{reply: reply}

			_, err := search.NewInterpreter(completer).Interpret(context.Background(), "anything")

			var translationErr *search.TranslationError
			require.ErrorAs(t, err, &translationErr, reply)
			assert.Equal(t, reply, translationErr.Reply)

			var upstreamErr *search.UpstreamError
			assert.False(t, errors.As(err, &upstreamErr))
		}
	})

	t.Run("Should return upstream error when the completion call fails", func(t *testing.T) {
		cause := errors.New("quota exceeded")
		completer := &fakeCompleter{err: cause}

		_, err := search.NewInterpreter(completer).Interpret(context.Background(), "anything")

		var upstreamErr *search.UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Should return upstream error on empty reply", func(t *testing.T) {
		completer := &fakeCompleter{reply: "  \n"}

		_, err := search.NewInterpreter(completer).Interpret(context.Background(), "anything")

		assert.ErrorIs(t, err, search.ErrEmptyCompletion)
	})
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		"```json\n{}\n```":  "{}",
		"```JSON {} ```":    "{}",
		"```\n{\"a\":1}```": `{"a":1}`,
		"  {}  ":            "{}",
	}

	for in, want := range tests {
		assert.Equal(t, want, search.StripCodeFence(in))
	}
}
