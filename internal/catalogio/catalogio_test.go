package catalogio_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-search/internal/catalogio"
)

const export = `[
  {
    "Handle": "usb-cable",
    "Title": "USB Cable",
    "Type": "Electronic Accessories",
    "Variant SKU": "SKU-12345-A",
    "Variant Grams": 120,
    "Variant Inventory Qty": 7,
    "Variant Price": "19.99",
    "Variant Compare At Price": 24.5,
    "Image Src": "https://cdn.example.com/usb.png"
  },
  {
    "Title": "Lamp",
    "Variant Price": 19.99,
    "Variant Inventory Qty": null
  }
]`

func TestDecode(t *testing.T) {
	products, err := catalogio.Decode(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, products, 2)

	cable, lamp := products[0], products[1]

	assert.Equal(t, "USB Cable", cable.Title)
	assert.Equal(t, "SKU-12345-A", cable.VariantSKU)
	assert.Equal(t, 120.0, cable.VariantGrams)
	require.NotNil(t, cable.VariantInventoryQty)
	assert.Equal(t, 7, *cable.VariantInventoryQty)
	assert.True(t, cable.VariantPrice.IsString())
	assert.Equal(t, "24.5", cable.VariantCompareAtPrice)
	assert.Equal(t, "https://cdn.example.com/usb.png", cable.ImageSrc)

	assert.False(t, lamp.VariantPrice.IsString())
	price, ok := lamp.VariantPrice.Float64()
	assert.True(t, ok)
	assert.Equal(t, 19.99, price)
	assert.Nil(t, lamp.VariantInventoryQty)

	assert.NotEqual(t, cable.ID, lamp.ID)
	assert.Less(t, cable.ID.String(), lamp.ID.String(), "ids are time ordered")
}

func TestDecodeLooselyTypedCells(t *testing.T) {
	products, err := catalogio.Decode(strings.NewReader(`[
	  {
	    "Title": "Phone Case",
	    "Option1 Value": 42,
	    "Variant SKU": 12345,
	    "Tags": null,
	    "Vendor": true,
	    "Variant Grams": "",
	    "Variant Inventory Qty": "",
	    "Variant Price": "9.99"
	  },
	  {
	    "Title": "Desk Lamp",
	    "Variant Grams": "250.5",
	    "Variant Inventory Qty": "12",
	    "Variant Price": 45
	  },
	  {
	    "Title": "Poster",
	    "Variant Grams": "heavy",
	    "Variant Inventory Qty": null
	  }
	]`))
	require.NoError(t, err)
	require.Len(t, products, 3)

	phoneCase, lamp, poster := products[0], products[1], products[2]

	assert.Equal(t, "42", phoneCase.Option1Value)
	assert.Equal(t, "12345", phoneCase.VariantSKU)
	assert.Empty(t, phoneCase.Tags)
	assert.Equal(t, "true", phoneCase.Vendor)
	assert.Zero(t, phoneCase.VariantGrams)
	assert.Nil(t, phoneCase.VariantInventoryQty)

	assert.Equal(t, 250.5, lamp.VariantGrams)
	require.NotNil(t, lamp.VariantInventoryQty)
	assert.Equal(t, 12, *lamp.VariantInventoryQty)

	assert.Zero(t, poster.VariantGrams)
	assert.Nil(t, poster.VariantInventoryQty)
}

func TestDecodeRejectsNonArray(t *testing.T) {
	_, err := catalogio.Decode(strings.NewReader(`{"Title": "x"}`))
	assert.Error(t, err)
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(export), 0o600))

	products, err := catalogio.DecodeFile(path)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
