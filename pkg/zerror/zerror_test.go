package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/catalog-search/pkg/zerror"
)

func TestWrapParent(t *testing.T) {
	base := zerror.NewBadRequest("BAD", "bad input")
	parent := errors.New("boom")

	wrapped := base.WrapParent(parent)

	assert.ErrorIs(t, wrapped, parent)
	assert.ErrorIs(t, wrapped, base)
	assert.Nil(t, base.Parent(), "predefined error must stay untouched")
	assert.Contains(t, wrapped.Error(), "Parent=(boom)")
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", zerror.NewServiceUnavailable("UPSTREAM", "down"))

	var zErr zerror.ZError
	if assert.ErrorAs(t, err, &zErr) {
		assert.Equal(t, zerror.StatusServiceUnavailable, zErr.Status())
		assert.Equal(t, "UPSTREAM", zErr.Code())
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "VALIDATION_FAILED", zerror.StatusValidationFailed.String())
	assert.Equal(t, "UNKNOWN", zerror.Status(200).String())
}
