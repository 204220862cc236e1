package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Criteria is the structured form of a natural-language search. Every field
// is optional and present fields are combined conjunctively.
type Criteria struct {
	SKU      string   `json:"sku,omitempty"`
	Category string   `json:"category,omitempty"`
	MaxPrice *Amount  `json:"maxPrice,omitempty"`
	MinPrice *Amount  `json:"minPrice,omitempty"`
	Keywords Keywords `json:"keywords,omitempty"`
}

// Amount is a price bound. It decodes from a JSON number or a numeric string
// since completion replies are not consistent about it.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		s = strings.TrimPrefix(strings.TrimSpace(s), "$")
		if s == "" {
			*a = 0
			return nil
		}

		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q is not a number", s)
		}
		return a.set(v)
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return a.set(v)
}

func (a *Amount) set(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("amount %v is not a finite number", v)
	}
	*a = Amount(v)
	return nil
}

// Keywords is an ordered list of search terms. A bare string decodes as a
// single keyword.
type Keywords []string

func (k *Keywords) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*k = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = Keywords{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*k = list
	return nil
}

// bound returns the amount of a and whether it constrains the search. Zero
// bounds are treated as absent.
func bound(a *Amount) (float64, bool) {
	if a == nil || *a == 0 {
		return 0, false
	}
	return float64(*a), true
}

// terms returns the keywords followed by the category, blank terms removed.
func (c Criteria) terms() []string {
	terms := make([]string, 0, len(c.Keywords)+1)
	for _, kw := range c.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			terms = append(terms, kw)
		}
	}
	if category := strings.TrimSpace(c.Category); category != "" {
		terms = append(terms, category)
	}
	return terms
}
