package errdef

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("disk on fire")
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"code only", ErrEmpty, "empty"},
		{"message", New(CodeOutOfRange, "index %d >= size %d", 4, 2), "out of range: index 4 >= size 2"},
		{"wrapped", Wrap(CodeDestructorFailed, cause, ""), "destructor failed: disk on fire"},
		{"wrapped with message", Wrap(CodeDestructorFailed, cause, "element %d", 1), "destructor failed: element 1: disk on fire"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualError(t, tc.err, tc.want)
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(CodeEmpty, nil, "ignored"))
}

func TestSentinelMatching(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("clear: %w", Wrap(CodeDestructorFailed, cause, "element 2"))

	require.ErrorIs(t, err, ErrDestructorFailed)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrEmpty)
	assert.True(t, Is(err, CodeDestructorFailed))
	assert.False(t, Is(err, CodeOutOfRange))
	assert.Equal(t, CodeDestructorFailed, CodeOf(err))
	assert.Equal(t, CodeUnknown, CodeOf(cause))
}

func TestNewEmptyCode(t *testing.T) {
	assert.Equal(t, CodeUnknown, CodeOf(New("", "x")))
}
