package search

import (
	"encoding/json"
	"regexp"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
)

// Field is a searchable product field, named after its document key.
type Field string

const (
	FieldTitle Field = "title"
	FieldSKU   Field = "variantSku"
	FieldType  Field = "type"
)

func (f Field) value(p model.Product) string {
	switch f {
	case FieldTitle:
		return p.Title
	case FieldSKU:
		return p.VariantSKU
	case FieldType:
		return p.Type
	default:
		return ""
	}
}

// Filter is a predicate over the product collection. Stores translate the
// concrete node types into their own query language; Matches is the
// reference evaluation. Filters marshal to a Mongo style query document.
type Filter interface {
	json.Marshaler

	// Matches reports whether p satisfies the filter.
	Matches(p model.Product) bool

	isFilter()
}

var (
	_ Filter = AllFilter{}
	_ Filter = AndFilter{}
	_ Filter = OrFilter{}
	_ Filter = RegexFilter{}
	_ Filter = PriceFilter{}
)

// AllFilter matches every product.
type AllFilter struct{}

// All returns a filter matching every product.
func All() Filter { return AllFilter{} }

func (AllFilter) Matches(model.Product) bool { return true }

func (AllFilter) MarshalJSON() ([]byte, error) { return []byte("{}"), nil }

func (AllFilter) isFilter() {}

// AndFilter matches products satisfying every clause.
type AndFilter struct {
	Clauses []Filter
}

// And combines clauses conjunctively.
func And(clauses ...Filter) Filter { return AndFilter{Clauses: clauses} }

func (f AndFilter) Matches(p model.Product) bool {
	for _, c := range f.Clauses {
		if !c.Matches(p) {
			return false
		}
	}
	return true
}

func (f AndFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]Filter{"$and": f.Clauses})
}

func (AndFilter) isFilter() {}

// OrFilter matches products satisfying at least one clause.
type OrFilter struct {
	Clauses []Filter
}

// Or combines clauses disjunctively.
func Or(clauses ...Filter) Filter { return OrFilter{Clauses: clauses} }

func (f OrFilter) Matches(p model.Product) bool {
	for _, c := range f.Clauses {
		if c.Matches(p) {
			return true
		}
	}
	return false
}

func (f OrFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]Filter{"$or": f.Clauses})
}

func (OrFilter) isFilter() {}

// RegexFilter matches products whose field matches Pattern, ignoring case.
// Pattern must already be escaped where literal matching is intended.
type RegexFilter struct {
	Field   Field
	Pattern string

	re *regexp.Regexp
}

// Regex returns a case-insensitive pattern filter on field.
func Regex(field Field, pattern string) Filter {
	// An invalid pattern leaves re nil and the filter matches nothing.
	re, _ := regexp.Compile("(?i)" + pattern)
	return RegexFilter{Field: field, Pattern: pattern, re: re}
}

func (f RegexFilter) Matches(p model.Product) bool {
	if f.re == nil {
		return false
	}
	return f.re.MatchString(f.Field.value(p))
}

func (f RegexFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[Field]map[string]string{
		f.Field: {"$regex": f.Pattern, "$options": "i"},
	})
}

func (RegexFilter) isFilter() {}

// CompareOp is the comparison of a PriceFilter.
type CompareOp string

const (
	OpLTE CompareOp = "$lte"
	OpGTE CompareOp = "$gte"
)

// PriceFilter compares the product price, coerced to a number according to
// its stored representation, against Bound. Prices that cannot be coerced
// never match.
type PriceFilter struct {
	Op    CompareOp
	Bound float64
}

// PriceAtMost returns a filter matching prices <= v.
func PriceAtMost(v float64) Filter { return PriceFilter{Op: OpLTE, Bound: v} }

// PriceAtLeast returns a filter matching prices >= v.
func PriceAtLeast(v float64) Filter { return PriceFilter{Op: OpGTE, Bound: v} }

func (f PriceFilter) Matches(p model.Product) bool {
	price, ok := p.VariantPrice.Float64()
	if !ok {
		return false
	}

	switch f.Op {
	case OpLTE:
		return price <= f.Bound
	case OpGTE:
		return price >= f.Bound
	default:
		return false
	}
}

func (f PriceFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[CompareOp][]any{
		"$expr": {
			f.Op: {map[string]string{"$toDouble": "$variantPrice"}, f.Bound},
		},
	})
}

func (PriceFilter) isFilter() {}
