package search

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is reported when the completion service answers with no text.
var ErrEmptyCompletion = errors.New("empty completion")

// ValidationError reports a request that cannot be searched as given.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TranslationError reports a completion reply that is not a valid criteria
// object. The request is at fault, not the service.
type TranslationError struct {
	Reply string
	Err   error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translate completion reply: %v", e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// UpstreamError reports that the completion service could not be reached or
// failed to answer.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion service unavailable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StoreError reports a failed product store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
