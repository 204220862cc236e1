package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/catalog-search/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-search/internal/config"
	"github.com/tuanvumaihuynh/catalog-search/internal/http/apierr"
	"github.com/tuanvumaihuynh/catalog-search/internal/http/metric"
	"github.com/tuanvumaihuynh/catalog-search/internal/http/middleware"
	"github.com/tuanvumaihuynh/catalog-search/internal/http/swagger"
	"github.com/tuanvumaihuynh/catalog-search/internal/service"
	"github.com/tuanvumaihuynh/catalog-search/internal/storage/db"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	catalogSvc service.CatalogService
	health     db.HealthChecker
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	catalogSvc service.CatalogService,
	health db.HealthChecker,
) *Service {
	return &Service{
		cfg:        cfg,
		logger:     log.With(slog.String("service", "http")),
		metrics:    metric.New(),
		catalogSvc: catalogSvc,
		health:     health,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Handler())
}

// Handler builds the router with every middleware and route registered.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return r
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "http server stopped", slog.Any("error", err))
		}
	}()

	s.logger.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.CORSOrigins),
		middleware.SecureHeaders(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	h := newCatalogHandler(s, s.catalogSvc)

	r.Get("/api/products", h.SearchProducts)

	// Every chat search costs a completion call.
	r.With(httprate.Limit(s.cfg.ChatRateLimit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			s.handleResponseError(w, r, apperr.RateLimitedErr)
		}),
	)).Post("/api/chat-search", h.ChatSearch)

	r.Get("/healthz", s.handleHealthz)

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	healthy, err := s.health.IsHealthy(ctx)
	if err != nil || !healthy {
		s.logger.WarnContext(r.Context(), "store health check failed", slog.Any("error", err))
		s.writeJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: healthStatusUnavailable})
		return
	}

	s.writeJSON(w, r, http.StatusOK, HealthResponse{Status: healthStatusOK})
}

func (s *Service) handleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	res := apierr.New(err)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.WarnContext(r.Context(), "error encoding error request",
			slog.Any("error", err))
	}
}

// handleSearchError writes err and counts it as a failed search.
func (s *Service) handleSearchError(w http.ResponseWriter, r *http.Request, entrypoint string, err error) {
	res := s.handleResponseError(w, r, err)
	s.metrics.SearchFailures.WithLabelValues(entrypoint, res.Code).Inc()
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) apierr.ErrorResponse {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}

	return res
}

// writeJSON encodes v before touching the response so an encoding failure
// still produces an error body.
func (s *Service) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.handleResponseError(w, r, fmt.Errorf("encode response: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.WarnContext(r.Context(), "error writing response",
			slog.Any("error", err))
	}
}
