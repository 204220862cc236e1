// Package llm provides the text completion client used to interpret
// natural-language searches.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/tuanvumaihuynh/catalog-search/internal/config"
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
	"github.com/tuanvumaihuynh/catalog-search/pkg/ptr"
)

var tracer = otel.Tracer("internal/llm")

// ErrMissingAPIKey is returned when no Gemini API key is configured.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

var _ search.Completer = (*GeminiClient)(nil)

type generateFunc func(ctx context.Context, prompt string) (string, error)

// GeminiClient completes prompts with a Gemini model.
type GeminiClient struct {
	cfg      config.LLM
	logger   *slog.Logger
	generate generateFunc
}

func NewGeminiClient(ctx context.Context, cfg config.LLM, logger *slog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:      ptr.New(cfg.Temperature),
		TopP:             ptr.New(cfg.TopP),
		TopK:             ptr.New(cfg.TopK),
		MaxOutputTokens:  cfg.MaxOutputTokens,
		ResponseMIMEType: "text/plain",
	}

	generate := func(ctx context.Context, prompt string) (string, error) {
		resp, err := cl.Models.GenerateContent(ctx, cfg.Model, genai.Text(prompt), genCfg)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}

	return newGeminiClient(cfg, logger, generate), nil
}

func newGeminiClient(cfg config.LLM, logger *slog.Logger, generate generateFunc) *GeminiClient {
	return &GeminiClient{
		cfg:      cfg,
		logger:   logger.With(slog.String("service", "llm")),
		generate: generate,
	}
}

// Complete sends prompt to the model. Each attempt is bounded by the
// configured timeout; transient failures are retried up to MaxRetries times.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "GeminiClient.Complete",
		trace.WithAttributes(
			attribute.String("llm.model", c.cfg.Model),
			attribute.Int("llm.prompt_length", len(prompt)),
		),
	)
	defer span.End()

	backoff := retry.WithMaxRetries(c.cfg.MaxRetries, retry.NewExponential(c.cfg.RetryBackoff))

	var (
		reply    string
		attempts int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++

		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		text, err := c.generate(attemptCtx, prompt)
		if err != nil {
			if retryable(ctx, err) {
				c.logger.WarnContext(ctx, "gemini call failed",
					slog.Int("attempt", attempts),
					slog.Any("error", err),
				)
				return retry.RetryableError(err)
			}
			return err
		}

		reply = text
		return nil
	})

	span.SetAttributes(attribute.Int("llm.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", fmt.Errorf("generate content: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return reply, nil
}

// retryable reports whether err may go away on another attempt. Client
// errors other than rate limiting and a done parent context are final.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	return true
}
