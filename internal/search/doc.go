// Package search turns plain substrings and natural-language requests into
// product filters and executes them page by page.
//
// A plain search is normalized with [Substring]. A natural-language search is
// interpreted into [Criteria] by a completion service ([Interpreter]) and
// compiled with [Compile]. Both kinds of [Filter] are executed by [Paginator].
package search
