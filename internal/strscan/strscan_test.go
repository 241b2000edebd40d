package strscan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironleaf-games/kvtext/internal/cursor"
	"github.com/ironleaf-games/kvtext/internal/strscan"
)

func TestScanQuotedNoUnicodePlain(t *testing.T) {
	c := cursor.New([]byte(`"hello"`))
	content, errMsg := strscan.ScanQuotedNoUnicode(c)
	require.Empty(t, errMsg)
	require.Equal(t, "hello", string(content))
	require.True(t, c.AtEnd())
}

func TestScanQuotedNoUnicodeCollapsesBackslashRun(t *testing.T) {
	c := cursor.New([]byte(`"a\\\b"`))
	content, errMsg := strscan.ScanQuotedNoUnicode(c)
	require.Empty(t, errMsg)
	require.Equal(t, "a/b", string(content))
}

func TestScanQuotedNoUnicodeDoesNotDecodeUnicodeEscape(t *testing.T) {
	c := cursor.New([]byte(`"\u0041"`))
	content, errMsg := strscan.ScanQuotedNoUnicode(c)
	require.Empty(t, errMsg)
	require.Equal(t, "/u0041", string(content))
}

func TestScanQuotedNoUnicodeUnterminated(t *testing.T) {
	c := cursor.New([]byte(`"abc`))
	_, errMsg := strscan.ScanQuotedNoUnicode(c)
	require.Equal(t, "unexpected end of string", errMsg)
}

func TestDecodeHex4(t *testing.T) {
	v, ok := strscan.DecodeHex4([]byte("0041"))
	require.True(t, ok)
	require.Equal(t, uint16(0x0041), v)

	_, ok = strscan.DecodeHex4([]byte("00zz"))
	require.False(t, ok)

	_, ok = strscan.DecodeHex4([]byte("ab"))
	require.False(t, ok)
}

func TestSurrogateClassification(t *testing.T) {
	require.True(t, strscan.IsHighSurrogate(0xD800))
	require.True(t, strscan.IsHighSurrogate(0xDBFF))
	require.False(t, strscan.IsHighSurrogate(0xDC00))

	require.True(t, strscan.IsLowSurrogate(0xDC00))
	require.True(t, strscan.IsLowSurrogate(0xDFFF))
	require.False(t, strscan.IsLowSurrogate(0xD800))
}

func TestDecodeRuneBMP(t *testing.T) {
	b := strscan.DecodeRune(0x0041, 0, false)
	require.Equal(t, "A", string(b))
}

func TestDecodeRuneSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE -> surrogate pair D83D DE00
	b := strscan.DecodeRune(0xD83D, 0xDE00, true)
	require.Equal(t, "\U0001F600", string(b))
}
