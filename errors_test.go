package tablegen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("users", "email")
	assert.EqualError(t, err, "tablegen: users not found by email")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("query: %w", err)))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.Equal(t, "users", err.Table())
	assert.Equal(t, "email", err.Field())
}

func TestNotSingularError(t *testing.T) {
	err := NewNotSingularError("users", "email")
	assert.EqualError(t, err, "tablegen: users not singular by email")
	assert.True(t, errors.Is(err, ErrNotSingular))
	assert.True(t, IsNotSingular(err))
	assert.False(t, IsNotSingular(err2(t)))
	assert.False(t, IsNotFound(err))
}

func err2(t *testing.T) error {
	t.Helper()
	return errors.New("unrelated")
}

func TestScanError(t *testing.T) {
	cause := errors.New("no such column")
	err := &ScanError{Column: "email", Err: cause}
	require.EqualError(t, err, `tablegen: scan column "email": no such column`)
	assert.Equal(t, cause, errors.Unwrap(err))
}
