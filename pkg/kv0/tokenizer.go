package kv0

import (
	"github.com/ironleaf-games/kvtext/internal/cursor"
	"github.com/ironleaf-games/kvtext/internal/invariant"
	"github.com/ironleaf-games/kvtext/internal/numscan"
	"github.com/ironleaf-games/kvtext/pkg/kv"
)

// tokenizer advances a cursor and produces one kv.Token at a time (spec
// §4.2). It holds no parse state beyond the cursor and its scratch
// buffer: calling Next twice at the same cursor position (without an
// intervening Advance) yields the same kind, per the tokenizer
// idempotence property (spec §8.1).
type tokenizer struct {
	cur          *cursor.Cursor
	cfg          *Config
	scratch      []byte
	inKeySlot    bool // unused in KV0 (kept for symmetry with KV1); always false
	allowInvalid bool
}

func newTokenizer(buf []byte, cfg *Config) *tokenizer {
	return &tokenizer{
		cur:          cursor.New(buf),
		cfg:          cfg,
		scratch:      make([]byte, 0, 64),
		allowInvalid: cfg.DecodeInvalidNumbers,
	}
}

// Next produces the next token, skipping whitespace and comments first.
func (t *tokenizer) Next() kv.Token {
	for {
		b := t.cur.Byte()
		c := classOf(b)

		switch c {
		case classWhitespace:
			t.cur.Advance()
			continue
		case classComment:
			t.skipLineComment()
			continue
		case classError:
			return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid character"}
		case classEnd:
			return kv.Token{Kind: kv.TokEnd, Offset: t.cur.Pos()}
		case classObjBegin, classObjEnd, classComma, classRef:
			offset := t.cur.Pos()
			kind := classToTokenKind(c)
			t.cur.Advance()
			return kv.Token{Kind: kind, Offset: offset}
		case classUnknown:
			return t.scanUnknown()
		default:
			return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid character"}
		}
	}
}

// skipLineComment implements spec §4.2's KV0 rule: a single '/' already
// classified COMMENT starts the comment, which runs to CR/LF/END; a
// second '/' is not required.
func (t *tokenizer) skipLineComment() {
	for {
		t.cur.Advance()
		b := t.cur.Byte()
		if b == 0 || b == '\n' || b == '\r' {
			return
		}
	}
}

func (t *tokenizer) scanUnknown() kv.Token {
	b := t.cur.Byte()
	switch {
	case b == '"':
		return t.scanQuotedString()
	case b == '+' || b == '-' || (b >= '0' && b <= '9'):
		return t.scanNumber()
	default:
		return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid character"}
	}
}

func (t *tokenizer) scanNumber() kv.Token {
	start := t.cur.Pos()
	v, n, ok := numscan.Scan(t.cur.Slice(start, t.cur.Len()), 0, t.allowInvalid)
	if !ok {
		return kv.Token{Kind: kv.TokError, Offset: start, ErrMsg: "invalid number"}
	}
	before := t.cur.Pos()
	t.cur.SeekPos(before + n)
	invariant.Invariant(t.cur.Pos() > before, "number scan must advance the cursor")
	return kv.Token{Kind: kv.TokNumber, Offset: start, Num: v}
}
