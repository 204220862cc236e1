package repository

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
)

var fieldColumns = map[search.Field]string{
	search.FieldTitle: `(doc->>'title')`,
	search.FieldSKU:   `(doc->>'variantSku')`,
	search.FieldType:  `(doc->>'type')`,
}

// priceExpr coerces the stored price by its JSON type. Strings that are not
// decimals yield NULL and therefore never satisfy a bound.
const priceExpr = `(CASE jsonb_typeof(doc->'variantPrice')
		WHEN 'number' THEN (doc->>'variantPrice')::numeric
		WHEN 'string' THEN CASE WHEN btrim(doc->>'variantPrice') ~ @price_pattern
			THEN btrim(doc->>'variantPrice')::numeric END
	END)`

type searchQuery struct {
	count string
	find  string
	args  pgx.NamedArgs
}

func buildSearchQuery(f search.Filter, skip, limit int) (searchQuery, error) {
	b := &whereBuilder{args: pgx.NamedArgs{}}

	where, err := b.build(f)
	if err != nil {
		return searchQuery{}, err
	}

	b.args["price_pattern"] = model.DecimalPattern
	b.args["skip"] = skip
	b.args["limit"] = limit

	return searchQuery{
		count: `SELECT COUNT(*) FROM products WHERE ` + where,
		find: `
			SELECT
				id,
				COALESCE(doc->>'title', ''),
				COALESCE(doc->>'imageSrc', ''),
				COALESCE(` + priceExpr + `, 0)::float8,
				COALESCE(doc->>'variantSku', ''),
				COALESCE(doc->>'type', '')
			FROM products
			WHERE ` + where + `
			ORDER BY id
			OFFSET @skip
			LIMIT @limit`,
		args: b.args,
	}, nil
}

type whereBuilder struct {
	args pgx.NamedArgs
	n    int
}

func (b *whereBuilder) bind(v any) string {
	b.n++
	name := fmt.Sprintf("p%d", b.n)
	b.args[name] = v
	return "@" + name
}

func (b *whereBuilder) build(f search.Filter) (string, error) {
	switch f := f.(type) {
	case search.AllFilter:
		return "TRUE", nil
	case search.AndFilter:
		return b.join(f.Clauses, " AND ", "TRUE")
	case search.OrFilter:
		return b.join(f.Clauses, " OR ", "FALSE")
	case search.RegexFilter:
		col, ok := fieldColumns[f.Field]
		if !ok {
			return "", fmt.Errorf("unsupported field %q", f.Field)
		}
		return col + " ~* " + b.bind(f.Pattern), nil
	case search.PriceFilter:
		var op string
		switch f.Op {
		case search.OpLTE:
			op = "<="
		case search.OpGTE:
			op = ">="
		default:
			return "", fmt.Errorf("unsupported price comparison %q", f.Op)
		}
		return priceExpr + " " + op + " " + b.bind(f.Bound) + "::numeric", nil
	default:
		return "", fmt.Errorf("unsupported filter %T", f)
	}
}

func (b *whereBuilder) join(clauses []search.Filter, sep, empty string) (string, error) {
	if len(clauses) == 0 {
		return empty, nil
	}

	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		part, err := b.build(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}

	return "(" + strings.Join(parts, sep) + ")", nil
}
