// Package catalogio reads storefront product exports.
package catalogio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
)

// exportRecord is one row of the storefront export. Keys follow the export's
// column names.
type exportRecord struct {
	Handle                    flexString  `json:"Handle"`
	Title                     flexString  `json:"Title"`
	Body                      flexString  `json:"Body"`
	Vendor                    flexString  `json:"Vendor"`
	Type                      flexString  `json:"Type"`
	Tags                      flexString  `json:"Tags"`
	Option1Name               flexString  `json:"Option1 Name"`
	Option1Value              flexString  `json:"Option1 Value"`
	Option2Name               flexString  `json:"Option2 Name"`
	Option2Value              flexString  `json:"Option2 Value"`
	Option3Name               flexString  `json:"Option3 Name"`
	Option3Value              flexString  `json:"Option3 Value"`
	VariantSKU                flexString  `json:"Variant SKU"`
	VariantGrams              flexNumber  `json:"Variant Grams"`
	VariantInventoryTracker   flexString  `json:"Variant Inventory Tracker"`
	VariantInventoryQty       flexNumber  `json:"Variant Inventory Qty"`
	VariantInventoryPolicy    flexString  `json:"Variant Inventory Policy"`
	VariantFulfillmentService flexString  `json:"Variant Fulfillment Service"`
	VariantPrice              model.Price `json:"Variant Price"`
	VariantCompareAtPrice     flexString  `json:"Variant Compare At Price"`
	ImageSrc                  flexString  `json:"Image Src"`
}

// flexString accepts a JSON string, number or boolean. Objects and arrays
// decode as empty.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
	case 't', 'f':
		*s = flexString(data)
	case 'n', '{', '[':
		*s = ""
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = flexString(n.String())
	}
	return nil
}

// flexNumber accepts a JSON number or a numeric string. Empty, null and
// non-numeric cells leave it unset.
type flexNumber struct {
	value float64
	set   bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	*n = flexNumber{}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		v = parsed
	default:
		return nil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = flexNumber{value: v, set: true}
	return nil
}

func (n flexNumber) float() float64 {
	return n.value
}

func (n flexNumber) intPtr() *int {
	if !n.set {
		return nil
	}
	v := int(math.Round(n.value))
	return &v
}

// Decode reads a JSON array of export rows and returns the products with
// fresh time ordered ids, in file order.
func Decode(r io.Reader) ([]model.Product, error) {
	var records []exportRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	now := time.Now()
	products := make([]model.Product, 0, len(records))
	for i, rec := range records {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generate uuid v7 for row %d: %w", i, err)
		}

		products = append(products, model.Product{
			ID:                        id,
			Handle:                    string(rec.Handle),
			Title:                     string(rec.Title),
			Body:                      string(rec.Body),
			Vendor:                    string(rec.Vendor),
			Type:                      string(rec.Type),
			Tags:                      string(rec.Tags),
			Option1Name:               string(rec.Option1Name),
			Option1Value:              string(rec.Option1Value),
			Option2Name:               string(rec.Option2Name),
			Option2Value:              string(rec.Option2Value),
			Option3Name:               string(rec.Option3Name),
			Option3Value:              string(rec.Option3Value),
			VariantSKU:                string(rec.VariantSKU),
			VariantGrams:              rec.VariantGrams.float(),
			VariantInventoryTracker:   string(rec.VariantInventoryTracker),
			VariantInventoryQty:       rec.VariantInventoryQty.intPtr(),
			VariantInventoryPolicy:    string(rec.VariantInventoryPolicy),
			VariantFulfillmentService: string(rec.VariantFulfillmentService),
			VariantPrice:              rec.VariantPrice,
			VariantCompareAtPrice:     string(rec.VariantCompareAtPrice),
			ImageSrc:                  string(rec.ImageSrc),
			CreatedAt:                 now,
			UpdatedAt:                 now,
		})
	}

	return products, nil
}

// DecodeFile decodes the export stored at path.
func DecodeFile(path string) ([]model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
