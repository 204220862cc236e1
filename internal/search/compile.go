package search

import "strings"

// Compile turns criteria into a filter. Price bounds compare the coerced
// product price, keywords and category form one pattern tested against
// title, type and SKU, and a SKU adds its own clause. Present clauses are
// AND-ed; criteria without clauses match every product.
//
// Terms are reduced to their singular stem before escaping, so "electronics"
// also finds "Electronic Accessories".
func Compile(c Criteria) Filter {
	var clauses []Filter

	if v, ok := bound(c.MaxPrice); ok {
		clauses = append(clauses, PriceAtMost(v))
	}

	if v, ok := bound(c.MinPrice); ok {
		clauses = append(clauses, PriceAtLeast(v))
	}

	if terms := c.terms(); len(terms) > 0 {
		escaped := make([]string, len(terms))
		for i, term := range terms {
			escaped[i] = EscapePattern(stem(term))
		}
		pattern := strings.Join(escaped, "|")

		clauses = append(clauses, Or(
			Regex(FieldTitle, pattern),
			Regex(FieldType, pattern),
			Regex(FieldSKU, pattern),
		))
	}

	if sku := strings.TrimSpace(c.SKU); sku != "" {
		clauses = append(clauses, Regex(FieldSKU, EscapePattern(sku)))
	}

	if len(clauses) == 0 {
		return All()
	}

	return And(clauses...)
}

// stem drops a plural "s" from words longer than three letters. The stem is
// a prefix of the plural, so both forms still match.
func stem(term string) string {
	if len(term) <= 3 || strings.HasSuffix(term, "ss") {
		return term
	}
	if last := term[len(term)-1]; last == 's' || last == 'S' {
		return term[:len(term)-1]
	}
	return term
}
