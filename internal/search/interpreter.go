package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/search")

// Completer sends a prompt to a text completion service and returns the reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const promptTemplate = `
Given the following product search query: %q
Convert this natural language query into a structured search criteria.
Only respond with a JSON object containing these fields:
- sku (string, optional): If a specific SKU is mentioned
- category (string, optional): Product category mentioned
- maxPrice (number, optional): Maximum price mentioned
- minPrice (number, optional): Minimum price mentioned
- keywords (string[], optional): Important search terms
Consider variations in category names (e.g., 'electronics' could match 'Electronic Accessories')
`

var codeFenceRegex = regexp.MustCompile("(?i)```(?:json)?\\s*|\\s*```")

// Interpreter translates natural-language requests into Criteria.
type Interpreter struct {
	completer Completer
}

// NewInterpreter creates an interpreter backed by completer.
func NewInterpreter(completer Completer) *Interpreter {
	return &Interpreter{completer: completer}
}

// Interpret asks the completion service for the criteria of utterance.
// A failed call is reported as *UpstreamError and an unusable reply as
// *TranslationError.
func (i *Interpreter) Interpret(ctx context.Context, utterance string) (Criteria, error) {
	ctx, span := tracer.Start(ctx, "Interpreter.Interpret")
	defer span.End()

	reply, err := i.completer.Complete(ctx, BuildPrompt(utterance))
	if err == nil && strings.TrimSpace(reply) == "" {
		err = ErrEmptyCompletion
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return Criteria{}, &UpstreamError{Err: err}
	}

	criteria, err := ParseCriteria(reply)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid completion reply")
		return Criteria{}, err
	}

	span.SetAttributes(attribute.Int("search.keywords", len(criteria.Keywords)))
	span.SetStatus(codes.Ok, "")
	return criteria, nil
}

// BuildPrompt returns the instruction prompt for utterance.
func BuildPrompt(utterance string) string {
	return fmt.Sprintf(promptTemplate, utterance)
}

// ParseCriteria decodes a completion reply, which may be wrapped in a
// Markdown code fence, into Criteria. Unknown keys are ignored.
func ParseCriteria(reply string) (Criteria, error) {
	cleaned := StripCodeFence(reply)

	if !strings.HasPrefix(cleaned, "{") {
		return Criteria{}, &TranslationError{
			Reply: reply,
			Err:   errors.New("reply is not a JSON object"),
		}
	}

	var c Criteria
	if err := json.Unmarshal([]byte(cleaned), &c); err != nil {
		return Criteria{}, &TranslationError{Reply: reply, Err: err}
	}

	return c, nil
}

// StripCodeFence removes ```json fences and surrounding whitespace.
func StripCodeFence(reply string) string {
	return strings.TrimSpace(codeFenceRegex.ReplaceAllString(reply, ""))
}
