package errdef

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		err := NewNotFound("event %d not found", 42)

		assert.True(t, IsNotFound(err))
		assert.False(t, IsDuplicated(err))
		assert.EqualError(t, err, "event 42 not found")
	})

	t.Run("duplicated", func(t *testing.T) {
		err := NewDuplicated("already registered")

		assert.True(t, IsDuplicated(err))
		assert.False(t, IsNotFound(err))
	})

	t.Run("wrapped errors keep their kind", func(t *testing.T) {
		err := fmt.Errorf("submitting: %w", NewForbidden("no access"))

		assert.True(t, IsForbidden(err))
	})

	t.Run("plain errors have no kind", func(t *testing.T) {
		err := errors.New("boom")

		assert.False(t, IsBadRequest(err))
		assert.False(t, IsUnauthorized(err))
		assert.False(t, IsValidation(err))
	})
}

func TestValidation(t *testing.T) {
	err := NewValidation(map[string]string{
		"email":               "must be a valid email address",
		"Years of Experience": "Years of Experience is required",
	})

	require.True(t, IsValidation(err))
	assert.Equal(t, "validation failed: Years of Experience: Years of Experience is required; email: must be a valid email address", err.Error())

	fields := ValidationFields(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "must be a valid email address", fields["email"])

	assert.Nil(t, ValidationFields(errors.New("boom")))
}
