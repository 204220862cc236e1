package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/catalog-search/internal/config"
	"github.com/tuanvumaihuynh/catalog-search/internal/event"
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
	"github.com/tuanvumaihuynh/catalog-search/pkg/validator"
)

type SearchProductsParams struct {
	// Page and Limit fall back to the first page and the browse limit when nil.
	Page   *int
	Limit  *int
	Search string
}

type ChatSearchParams struct {
	Message string `validate:"notblank,max=1000"`
	// Page and Limit fall back to the first page and the chat limit when nil.
	Page  *int
	Limit *int
}

type ChatSearchResult struct {
	search.Page
	Criteria search.Criteria
	Query    search.Filter
}

type CatalogService interface {
	SearchProducts(ctx context.Context, params SearchProductsParams) (search.Page, error)
	ChatSearch(ctx context.Context, params ChatSearchParams) (ChatSearchResult, error)
}

type catalogService struct {
	cfg         config.Search
	logger      *slog.Logger
	validator   validator.Validator
	paginator   *search.Paginator
	interpreter *search.Interpreter
	publisher   event.Publisher
}

func NewCatalogService(
	cfg config.Search,
	logger *slog.Logger,
	validator validator.Validator,
	store search.Store,
	completer search.Completer,
	publisher event.Publisher,
) CatalogService {
	return &catalogService{
		cfg:         cfg,
		logger:      logger.With(slog.String("service", "catalog")),
		validator:   validator,
		paginator:   search.NewPaginator(store, cfg.MaxLimit),
		interpreter: search.NewInterpreter(completer),
		publisher:   publisher,
	}
}

func (s *catalogService) SearchProducts(ctx context.Context, params SearchProductsParams) (search.Page, error) {
	if err := s.validate(params); err != nil {
		return search.Page{}, err
	}

	page, limit := pageAndLimit(params.Page, params.Limit, s.cfg.BrowseLimit)

	res, err := s.paginator.Paginate(ctx, search.Substring(params.Search), page, limit)
	if err != nil {
		return search.Page{}, fmt.Errorf("paginate products: %w", err)
	}

	s.publish(ctx, event.EntrypointBrowse, params.Search, limit, res)

	return res, nil
}

func (s *catalogService) ChatSearch(ctx context.Context, params ChatSearchParams) (ChatSearchResult, error) {
	if err := s.validate(params); err != nil {
		return ChatSearchResult{}, err
	}

	page, limit := pageAndLimit(params.Page, params.Limit, s.cfg.ChatLimit)

	criteria, err := s.interpreter.Interpret(ctx, params.Message)
	if err != nil {
		return ChatSearchResult{}, fmt.Errorf("interpret message: %w", err)
	}

	query := search.Compile(criteria)

	s.logger.DebugContext(ctx, "compiled search criteria",
		slog.Any("criteria", criteria),
		slog.Any("query", query),
	)

	res, err := s.paginator.Paginate(ctx, query, page, limit)
	if err != nil {
		return ChatSearchResult{}, fmt.Errorf("paginate products: %w", err)
	}

	s.publish(ctx, event.EntrypointChat, params.Message, limit, res)

	return ChatSearchResult{
		Page:     res,
		Criteria: criteria,
		Query:    query,
	}, nil
}

func (s *catalogService) validate(params any) error {
	err := s.validator.Validate(params)
	if err == nil {
		return nil
	}

	var fieldErrs govalidator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &search.ValidationError{
			Field:  lowerFirst(fe.Field()),
			Reason: validator.ValidationErrorMessage(fe),
		}
	}

	return fmt.Errorf("validate params: %w", err)
}

func (s *catalogService) publish(ctx context.Context, entrypoint, query string, limit int, res search.Page) {
	id, err := uuid.NewV7()
	if err != nil {
		s.logger.WarnContext(ctx, "generate search id", slog.Any("error", err))
		return
	}

	s.publisher.Publish(ctx, event.SearchPerformedEvent{
		SearchID:   id.String(),
		Entrypoint: entrypoint,
		Query:      query,
		Page:       res.CurrentPage,
		Limit:      limit,
		TotalItems: res.TotalItems,
		OccurredAt: time.Now().UTC(),
	})
}

func pageAndLimit(page, limit *int, defaultLimit int) (int, int) {
	p, l := 1, defaultLimit
	if page != nil {
		p = *page
	}
	if limit != nil {
		l = *limit
	}
	return p, l
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
