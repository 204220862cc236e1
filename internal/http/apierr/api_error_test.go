package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/catalog-search/internal/apperr"
	"github.com/tuanvumaihuynh/catalog-search/internal/http/apierr"
	"github.com/tuanvumaihuynh/catalog-search/internal/search"
	"github.com/tuanvumaihuynh/catalog-search/pkg/validator"
	"github.com/tuanvumaihuynh/catalog-search/pkg/zerror"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "translation error",
			err:        fmt.Errorf("interpret message: %w", &search.TranslationError{Reply: "not json", Err: errors.New("bad")}),
			wantStatus: http.StatusBadRequest,
			wantCode:   apperr.TranslationErrorCode,
			wantMsg:    "Invalid search criteria generated",
		},
		{
			name:       "validation error",
			err:        &search.ValidationError{Field: "message", Reason: "must not be blank"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apperr.ValidationErrorCode,
			wantMsg:    "invalid message: must not be blank",
		},
		{
			name:       "upstream error",
			err:        &search.UpstreamError{Err: errors.New("quota")},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   apperr.UpstreamUnavailableErrorCode,
		},
		{
			name:       "store error",
			err:        &search.StoreError{Op: "search products", Err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperr.StoreErrorCode,
			wantMsg:    "Failed to process search request",
		},
		{
			name:       "zerror",
			err:        zerror.NewTooManyRequests("RATE_LIMITED", "slow down"),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "RATE_LIMITED",
			wantMsg:    "slow down",
		},
		{
			name:       "unknown error",
			err:        errors.New("kaboom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := apierr.New(tt.err)

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, tt.wantCode, res.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, res.Message)
			}
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestNewValidatorErrors(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	type body struct {
		Message string `validate:"notblank"`
	}
	res := apierr.New(v.Validate(body{Message: " "}))

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.NotNil(t, res.Details)
	assert.Equal(t, []apierr.FieldError{{Field: "Message", Message: "must not be blank"}}, *res.Details)
}
