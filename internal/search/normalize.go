package search

import "regexp"

// EscapePattern escapes every regular expression metacharacter in s
// (. * + ? ^ $ { } ( ) | [ ] \) so that s is matched literally.
func EscapePattern(s string) string {
	return regexp.QuoteMeta(s)
}

// Substring returns a case-insensitive filter matching products whose title
// or SKU contains s. An empty s matches every product.
func Substring(s string) Filter {
	if s == "" {
		return All()
	}

	pattern := EscapePattern(s)
	return Or(
		Regex(FieldTitle, pattern),
		Regex(FieldSKU, pattern),
	)
}
