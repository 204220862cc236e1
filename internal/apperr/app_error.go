package apperr

import (
	"errors"

	"github.com/tuanvumaihuynh/catalog-search/internal/search"
	"github.com/tuanvumaihuynh/catalog-search/pkg/zerror"
)

const (
	ValidationErrorCode          = "VALIDATION_FAILED"
	TranslationErrorCode         = "TRANSLATION_FAILED"
	UpstreamUnavailableErrorCode = "UPSTREAM_UNAVAILABLE"
	StoreErrorCode               = "STORE_FAILED"
	RateLimitedErrorCode         = "RATE_LIMITED"
)

var (
	ValidationErr          = zerror.NewValidationFailed(ValidationErrorCode, "invalid request")
	TranslationErr         = zerror.NewBadRequest(TranslationErrorCode, "Invalid search criteria generated")
	UpstreamUnavailableErr = zerror.NewServiceUnavailable(UpstreamUnavailableErrorCode, "search assistant is unavailable, try again later")
	StoreErr               = zerror.NewInternalServerError(StoreErrorCode, "Failed to process search request")
	RateLimitedErr         = zerror.NewTooManyRequests(RateLimitedErrorCode, "too many requests")
)

// FromSearchError maps a search failure onto the matching application error.
// Errors of other kinds are returned unchanged.
func FromSearchError(err error) error {
	var (
		validationErr  *search.ValidationError
		translationErr *search.TranslationError
		upstreamErr    *search.UpstreamError
		storeErr       *search.StoreError
	)

	switch {
	case errors.As(err, &validationErr):
		return zerror.NewValidationFailed(ValidationErrorCode, validationErr.Error()).WrapParent(err)
	case errors.As(err, &translationErr):
		return TranslationErr.WrapParent(err)
	case errors.As(err, &upstreamErr):
		return UpstreamUnavailableErr.WrapParent(err)
	case errors.As(err, &storeErr):
		return StoreErr.WrapParent(err)
	default:
		return err
	}
}
