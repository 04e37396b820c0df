package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateFieldError(t *testing.T) {
	err := &DuplicateFieldError{Field: "username", Value: "alice"}

	t.Run("message names the field and value", func(t *testing.T) {
		assert.Equal(t, `duplicate username: "alice"`, err.Error())
	})

	t.Run("matches the same field", func(t *testing.T) {
		assert.ErrorIs(t, err, &DuplicateFieldError{Field: "username"})
		assert.NotErrorIs(t, err, &DuplicateFieldError{Field: "email"})
	})

	t.Run("empty-field target matches any duplicate", func(t *testing.T) {
		assert.ErrorIs(t, err, &DuplicateFieldError{})
	})

	t.Run("does not match unrelated errors", func(t *testing.T) {
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("survives wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("creating account: %w", err)

		var dupErr *DuplicateFieldError
		require.True(t, errors.As(wrapped, &dupErr))
		assert.Equal(t, "username", dupErr.Field)
		assert.ErrorIs(t, wrapped, &DuplicateFieldError{Field: "username"})
	})
}
