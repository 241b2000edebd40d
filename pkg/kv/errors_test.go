package kv_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironleaf-games/kvtext/pkg/kv"
)

func TestErrorFormatWithOffset(t *testing.T) {
	err := kv.NewLexicalError("invalid character", 4)
	require.Equal(t, "invalid character ... at character 5", err.Error())
}

func TestErrorFormatWithoutOffset(t *testing.T) {
	err := kv.NewEncodeError("cannot serialise value")
	require.Equal(t, "cannot serialise value", err.Error())
}

func TestErrorFormatWithCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := kv.NewIOError("could not open \"x\"", cause)
	require.Equal(t, `could not open "x": permission denied`, err.Error())
}

func TestIsKind(t *testing.T) {
	err := kv.NewStructuralError("found too many nested data structures", 0)
	require.True(t, kv.IsKind(err, kv.Structural))
	require.False(t, kv.IsKind(err, kv.Lexical))
	require.False(t, kv.IsKind(errors.New("plain"), kv.Structural))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := kv.NewIOError("write failed", cause)
	require.Same(t, cause, errors.Unwrap(err))
}
