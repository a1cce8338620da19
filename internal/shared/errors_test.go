package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewInvalidInput("utilities must be non-negative")
	assert.Equal(t, "utilities must be non-negative", err.Error())
	assert.Equal(t, ErrCodeInvalidInput, err.Code)

	wrapped := NewSolverFailed("engine diverged").WithError(errors.New("line search failed"))
	assert.Equal(t, "engine diverged: line search failed", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "line search failed")
}

func TestAppError_Details(t *testing.T) {
	err := NewNumeric("column sums off").WithDetails("good", 2).WithDetails("sum", 0.5)
	assert.Equal(t, 2, err.Details["good"])
	assert.Equal(t, 0.5, err.Details["sum"])
}

func TestHasCode(t *testing.T) {
	err := NewInvalidInput("entitlements must be strictly positive")
	assert.True(t, HasCode(err, ErrCodeInvalidInput))
	assert.False(t, HasCode(err, ErrCodeNumeric))

	// Works through wrapping
	wrapped := fmt.Errorf("solve failed: %w", err)
	assert.True(t, HasCode(wrapped, ErrCodeInvalidInput))

	assert.False(t, HasCode(errors.New("plain"), ErrCodeInvalidInput))
}

func TestToAppError(t *testing.T) {
	appErr := NewDisputeInvalid("unknown agent in bid")
	assert.Same(t, appErr, ToAppError(appErr))

	converted := ToAppError(errors.New("boom"))
	assert.Equal(t, ErrCodeSolverFailed, converted.Code)
	assert.True(t, IsAppError(converted))
}
