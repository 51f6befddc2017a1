package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Behavior(t *testing.T) {
	err := NewValidationError("missing section").
		WithDetail("section", "tier_structure").
		WithComponent("model")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "missing section", err.Message)
	assert.Equal(t, "model", err.Component)
	assert.Equal(t, "tier_structure", err.Details["section"])
	assert.Equal(t, "missing section", err.Error())
}

func TestAppError_WithCause_Unwrap(t *testing.T) {
	cause := ErrInvalidInput
	err := NewInputError("cannot read file").WithCause(cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "cannot read file")
	assert.Contains(t, err.Error(), cause.Error())
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsInput(NewInputError("x")))
	assert.True(t, IsParse(NewParseError("x")))
	assert.True(t, IsValidation(NewValidationError("x")))
	assert.True(t, IsInfrastructure(NewInfrastructureError("x")))

	val := NewValidationError("x")
	assert.False(t, IsInput(val))
	assert.False(t, IsParse(val))
	assert.False(t, IsInfrastructure(val))

	assert.False(t, IsValidation(errors.New("plain")))
}

func TestTypePredicates_Wrapped(t *testing.T) {
	inner := NewInfrastructureError("write failed")
	wrapped := fmt.Errorf("publish: %w", inner)
	assert.True(t, IsInfrastructure(wrapped))
}

func TestWrapError(t *testing.T) {
	app := NewParseError("bad json")
	assert.Same(t, app, WrapError(app, "ignored"))

	plain := errors.New("boom")
	wrapped := WrapError(plain, "something broke")
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Equal(t, plain, wrapped.Unwrap())
}
