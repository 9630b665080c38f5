package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("loading booking: %w", apperrors.NewNotFoundError("booking not found"))
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(wrapped))
	assert.True(t, apperrors.Is(wrapped, apperrors.ErrorTypeNotFound))

	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.TypeOf(errors.New("boom")))
	assert.False(t, apperrors.Is(nil, apperrors.ErrorTypeInternal))
}

func TestAppError_Error(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.NewInternalError("failed to list bookings", cause)

	assert.Equal(t, "INTERNAL: failed to list bookings: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "VALIDATION: bad rating", apperrors.NewValidationError("bad rating").Error())
}
