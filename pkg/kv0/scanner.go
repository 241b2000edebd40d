package kv0

import (
	"github.com/ironleaf-games/kvtext/internal/strscan"
	"github.com/ironleaf-games/kvtext/pkg/kv"
)

// scanQuotedString implements spec §4.3a. Preconditions: cur.Byte() == '"'.
// On return the cursor sits just past the closing quote (success) or at
// the byte that caused the error.
func (t *tokenizer) scanQuotedString() kv.Token {
	start := t.cur.Pos()
	t.cur.Advance() // past opening quote
	t.scratch = t.scratch[:0]

	for {
		b := t.cur.Byte()
		switch {
		case b == '"':
			t.cur.Advance()
			return kv.Token{Kind: kv.TokString, Offset: start, Str: string(t.scratch)}
		case b == 0:
			return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "unexpected end of string"}
		case b == '\\':
			if tok, errTok, isErr := t.scanEscape(); isErr {
				return errTok
			} else {
				t.scratch = append(t.scratch, tok...)
			}
		default:
			t.scratch = append(t.scratch, b)
			t.cur.Advance()
		}
	}
}

// scanEscape consumes one backslash escape sequence, returning the
// decoded bytes to append to the scratch buffer.
func (t *tokenizer) scanEscape() (decoded []byte, errTok kv.Token, isErr bool) {
	t.cur.Advance() // past backslash
	b := t.cur.Byte()
	switch b {
	case '"':
		t.cur.Advance()
		return []byte{'"'}, kv.Token{}, false
	case '\\':
		t.cur.Advance()
		return []byte{'\\'}, kv.Token{}, false
	case '/':
		t.cur.Advance()
		return []byte{'/'}, kv.Token{}, false
	case 'b':
		t.cur.Advance()
		return []byte{'\b'}, kv.Token{}, false
	case 't':
		t.cur.Advance()
		return []byte{'\t'}, kv.Token{}, false
	case 'n':
		t.cur.Advance()
		return []byte{'\n'}, kv.Token{}, false
	case 'f':
		t.cur.Advance()
		return []byte{'\f'}, kv.Token{}, false
	case 'r':
		t.cur.Advance()
		return []byte{'\r'}, kv.Token{}, false
	case 'u':
		return t.scanUnicodeEscape()
	case 0:
		return nil, kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "unexpected end of string"}, true
	default:
		return nil, kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid escape code"}, true
	}
}

func (t *tokenizer) scanUnicodeEscape() (decoded []byte, errTok kv.Token, isErr bool) {
	t.cur.Advance() // past 'u'
	hi, ok := t.readHex4()
	if !ok {
		return nil, kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid unicode escape code"}, true
	}

	if strscan.IsHighSurrogate(hi) {
		// Expect a following \uDxxx low surrogate.
		save := t.cur.Pos()
		if t.cur.Byte() == '\\' && t.cur.Peek(1) == 'u' {
			t.cur.Advance()
			t.cur.Advance()
			lo, ok := t.readHex4()
			if ok && strscan.IsLowSurrogate(lo) {
				return strscan.DecodeRune(hi, lo, true), kv.Token{}, false
			}
		}
		t.cur.SeekPos(save)
		return nil, kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid unicode escape code"}, true
	}

	return strscan.DecodeRune(hi, 0, false), kv.Token{}, false
}

func (t *tokenizer) readHex4() (uint16, bool) {
	b := t.cur.Slice(t.cur.Pos(), t.cur.Pos()+4)
	v, ok := strscan.DecodeHex4(b)
	if !ok {
		return 0, false
	}
	for i := 0; i < 4; i++ {
		t.cur.Advance()
	}
	return v, true
}
