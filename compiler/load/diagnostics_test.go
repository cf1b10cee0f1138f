package load

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := &Error{
		Code:    CodeUnknownKey,
		Table:   "User",
		Field:   "email",
		Pos:     Position{File: "user.yaml", Line: 12, Column: 5},
		Message: `unknown annotation key "emial"`,
	}
	assert.EqualError(t, err, `tablegen: user.yaml:12:5: User.email: unknown annotation key "emial" (UnknownAnnotationKey)`)
	assert.True(t, errors.Is(err, ErrInvalidDescriptor))
	assert.True(t, IsDescriptorError(err))
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "MissingID", CodeMissingID.String())
	assert.Equal(t, "DuplicateID", CodeDuplicateID.String())
	assert.Equal(t, "MissingTypeOverride", CodeMissingTypeOverride.String())
	assert.Equal(t, "DuplicateAccessorKind", CodeDuplicateAccessor.String())
	assert.Equal(t, "DanglingAccessorReference", CodeDanglingReference.String())
	assert.Equal(t, "Code(99)", Code(99).String())
}

func TestDiagnosticsAggregation(t *testing.T) {
	d := &Diagnostics{}
	assert.True(t, d.Empty())
	require.NoError(t, d.Err())

	d.Reportf(CodeMissingID, "User", "", Position{}, "no id field")
	d.Reportf(CodeUnknownKey, "User", "name", Position{}, "unknown annotation key %q", "x")
	require.Len(t, d.Errors(), 2)

	err := d.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.Contains(t, err.Error(), "no id field")
	assert.Contains(t, err.Error(), `unknown annotation key "x"`)
}
