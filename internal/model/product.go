package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is one catalog line item as stored in the product collection.
// Everything but ID is optional; zero values are display safe.
type Product struct {
	ID uuid.UUID `json:"id"`

	Handle       string `json:"handle,omitempty"`
	Title        string `json:"title,omitempty"`
	Body         string `json:"body,omitempty"`
	Vendor       string `json:"vendor,omitempty"`
	Type         string `json:"type,omitempty"`
	Tags         string `json:"tags,omitempty"`
	Option1Name  string `json:"option1Name,omitempty"`
	Option1Value string `json:"option1Value,omitempty"`
	Option2Name  string `json:"option2Name,omitempty"`
	Option2Value string `json:"option2Value,omitempty"`
	Option3Name  string `json:"option3Name,omitempty"`
	Option3Value string `json:"option3Value,omitempty"`

	VariantSKU                string  `json:"variantSku,omitempty"`
	VariantGrams              float64 `json:"variantGrams,omitempty"`
	VariantInventoryTracker   string  `json:"variantInventoryTracker,omitempty"`
	VariantInventoryQty       *int    `json:"variantInventoryQty,omitempty"`
	VariantInventoryPolicy    string  `json:"variantInventoryPolicy,omitempty"`
	VariantFulfillmentService string  `json:"variantFulfillmentService,omitempty"`
	VariantPrice              Price   `json:"variantPrice,omitzero"`
	VariantCompareAtPrice     string  `json:"variantCompareAtPrice,omitempty"`
	ImageSrc                  string  `json:"imageSrc,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary projects the product to the response safe subset of fields.
func (p Product) Summary() ProductSummary {
	price, _ := p.VariantPrice.Float64()

	return ProductSummary{
		ID:           p.ID,
		Title:        p.Title,
		ImageSrc:     p.ImageSrc,
		VariantPrice: price,
		SKU:          p.VariantSKU,
		Type:         p.Type,
	}
}

// ProductSummary is the product shape returned by searches.
type ProductSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	ImageSrc     string    `json:"imageSrc"`
	VariantPrice float64   `json:"variantPrice"`
	SKU          string    `json:"sku"`
	Type         string    `json:"type"`
}

// DecimalPattern is the grammar a string price must follow to be treated as
// a number. Stores apply the same rule when comparing prices.
const DecimalPattern = `^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`

var decimalRegex = regexp.MustCompile(DecimalPattern)

// Price is a price in the representation it was imported with. Catalog
// exports carry both JSON numbers and numeric strings and both are kept as is;
// comparisons go through Float64.
type Price struct {
	raw      string
	isString bool
}

// NumberPrice returns a price stored as a JSON number.
func NumberPrice(v float64) Price {
	return Price{raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// StringPrice returns a price stored as a JSON string.
func StringPrice(s string) Price {
	return Price{raw: s, isString: true}
}

// IsZero reports whether no price is stored.
func (p Price) IsZero() bool {
	return p.raw == "" && !p.isString
}

// IsString reports whether the price is stored as a string.
func (p Price) IsString() bool {
	return p.isString
}

// Float64 coerces the stored value to a number. ok is false when no price is
// stored or a string price is not numeric.
func (p Price) Float64() (v float64, ok bool) {
	s := p.raw
	if p.isString {
		s = strings.TrimSpace(s)
		if !decimalRegex.MatchString(s) {
			return 0, false
		}
	}
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (p Price) String() string {
	return p.raw
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.isString {
		return json.Marshal(p.raw)
	}
	if p.raw == "" {
		return []byte("null"), nil
	}
	return []byte(p.raw), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*p = Price{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshal price string: %w", err)
		}
		*p = StringPrice(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unmarshal price number: %w", err)
		}
		*p = Price{raw: n.String()}
	}

	return nil
}
