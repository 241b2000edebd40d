package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironleaf-games/kvtext/internal/cursor"
)

func TestByteAndAdvance(t *testing.T) {
	c := cursor.New([]byte("ab"))
	require.Equal(t, byte('a'), c.Byte())
	c.Advance()
	require.Equal(t, byte('b'), c.Byte())
	c.Advance()
	require.Equal(t, byte(0), c.Byte())
	require.True(t, c.AtEnd())
}

func TestAdvancePastEndIsNoOp(t *testing.T) {
	c := cursor.New([]byte("a"))
	c.Advance()
	c.Advance()
	c.Advance()
	require.Equal(t, 1, c.Pos())
}

func TestPeek(t *testing.T) {
	c := cursor.New([]byte("abc"))
	require.Equal(t, byte('b'), c.Peek(1))
	require.Equal(t, byte('c'), c.Peek(2))
	require.Equal(t, byte(0), c.Peek(10))
	require.Equal(t, byte(0), c.Peek(-1))
}

func TestSeekPosClamps(t *testing.T) {
	c := cursor.New([]byte("abc"))
	c.SeekPos(-5)
	require.Equal(t, 0, c.Pos())
	c.SeekPos(100)
	require.Equal(t, 3, c.Pos())
}

func TestSlice(t *testing.T) {
	c := cursor.New([]byte("hello"))
	require.Equal(t, "ell", string(c.Slice(1, 4)))
	require.Equal(t, "hello", string(c.Slice(-1, 100)))
	require.Equal(t, "", string(c.Slice(3, 1)))
}
