package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/catalog-search/internal/model"
	"github.com/tuanvumaihuynh/catalog-search/internal/repository"
	"github.com/tuanvumaihuynh/catalog-search/internal/storage/db"
)

type ImportProductsParams struct {
	Products []model.Product
	// KeepExisting appends to the collection instead of replacing it.
	KeepExisting bool
}

type ImportProductsResult struct {
	Deleted  int64
	Inserted int64
}

type ImportService interface {
	ImportProducts(ctx context.Context, params ImportProductsParams) (ImportProductsResult, error)
}

type importService struct {
	logger      *slog.Logger
	db          db.DB
	productRepo repository.ProductRepository
}

func NewImportService(
	logger *slog.Logger,
	db db.DB,
	productRepo repository.ProductRepository,
) ImportService {
	return &importService{
		logger:      logger.With(slog.String("service", "import")),
		db:          db,
		productRepo: productRepo,
	}
}

// ImportProducts loads products in one transaction, so a failed import leaves
// the previous collection untouched.
func (s *importService) ImportProducts(ctx context.Context, params ImportProductsParams) (ImportProductsResult, error) {
	var res ImportProductsResult

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.productRepo.WithDB(db)

		if !params.KeepExisting {
			n, err := repo.DeleteAllProducts(ctx)
			if err != nil {
				return fmt.Errorf("product repository delete all products: %w", err)
			}
			res.Deleted = n
		}

		if len(params.Products) == 0 {
			return nil
		}

		n, err := repo.InsertProducts(ctx, params.Products)
		if err != nil {
			return fmt.Errorf("product repository insert products: %w", err)
		}
		res.Inserted = n

		return nil
	}); err != nil {
		return ImportProductsResult{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "products imported",
		slog.Int64("deleted", res.Deleted),
		slog.Int64("inserted", res.Inserted),
	)

	return res, nil
}
