package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
	"github.com/tuanvumaihuynh/catalog-search/internal/storage/db"
)

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	SearchProducts(ctx context.Context, f search.Filter, skip, limit int) ([]model.ProductSummary, int64, error)
	InsertProducts(ctx context.Context, products []model.Product) (int64, error)
	DeleteAllProducts(ctx context.Context) (int64, error)
}

var _ search.Store = (ProductRepository)(nil)

type productRepository struct {
	db db.DB
}

// NewProductRepository returns a repository over the products table. Each
// product is stored as a JSON document so imported values keep their type.
func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) SearchProducts(ctx context.Context, f search.Filter, skip, limit int) ([]model.ProductSummary, int64, error) {
	q, err := buildSearchQuery(f, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("build search query: %w", err)
	}

	var (
		items []model.ProductSummary
		total int64
	)
	if err := r.db.WithReadOnlyTx(ctx, func(db db.DB) error {
		if err := db.QueryRow(ctx, q.count, q.args).Scan(&total); err != nil {
			return fmt.Errorf("count products: %w", err)
		}

		if total <= int64(skip) {
			return nil
		}

		rows, err := db.Query(ctx, q.find, q.args)
		if err != nil {
			return fmt.Errorf("find products: %w", err)
		}

		items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ProductSummary, error) {
			var s model.ProductSummary
			err := row.Scan(&s.ID, &s.Title, &s.ImageSrc, &s.VariantPrice, &s.SKU, &s.Type)
			return s, err
		})
		if err != nil {
			return fmt.Errorf("scan products: %w", err)
		}

		return nil
	}); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r productRepository) InsertProducts(ctx context.Context, products []model.Product) (int64, error) {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		doc, err := json.Marshal(p)
		if err != nil {
			return 0, fmt.Errorf("marshal product %s: %w", p.ID, err)
		}
		rows = append(rows, []any{p.ID, doc, p.CreatedAt, p.UpdatedAt})
	}

	n, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"products"},
		[]string{"id", "doc", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("copy products: %w", err)
	}

	return n, nil
}

func (r productRepository) DeleteAllProducts(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products`)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}

	return tag.RowsAffected(), nil
}
