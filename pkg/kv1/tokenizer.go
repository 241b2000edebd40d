package kv1

import (
	"github.com/ironleaf-games/kvtext/internal/cursor"
	"github.com/ironleaf-games/kvtext/internal/invariant"
	"github.com/ironleaf-games/kvtext/internal/numscan"
	"github.com/ironleaf-games/kvtext/internal/strscan"
	"github.com/ironleaf-games/kvtext/pkg/kv"
)

// tokenizer produces one kv.Token at a time from a KV1 buffer (spec
// §4.2). inKeySlot is set by the parser immediately before requesting a
// key token: it changes how a leading digit/'-' dispatches, since KV1
// keys may themselves be numeric-looking strings (spec §4.3b). A leading
// '+' is never a valid token start in either slot.
type tokenizer struct {
	cur          *cursor.Cursor
	cfg          *Config
	inKeySlot    bool
	allowInvalid bool
}

func newTokenizer(buf []byte, cfg *Config) *tokenizer {
	return &tokenizer{cur: cursor.New(buf), cfg: cfg, allowInvalid: cfg.DecodeInvalidNumbers}
}

func (t *tokenizer) Next() kv.Token {
	for {
		b := t.cur.Byte()
		c := classOf(b)

		switch c {
		case classWhitespace:
			t.cur.Advance()
			continue
		case classCommentStart:
			switch t.skipBlockComment() {
			case commentNone:
				return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid character"}
			case commentUnterminated:
				return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "unterminated comment"}
			case commentOK:
				continue
			}
		case classError:
			return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid character"}
		case classEnd:
			return kv.Token{Kind: kv.TokEnd, Offset: t.cur.Pos()}
		case classObjBegin, classObjEnd, classArrBegin, classArrEnd, classComma, classColon:
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

type commentResult int8

const (
	commentNone commentResult = iota
	commentOK
	commentUnterminated
)

// skipBlockComment consumes a "<!-- ... -->" block comment (spec §4.2);
// a '<' not followed by "!--" is a lexical error, not a comment.
func (t *tokenizer) skipBlockComment() commentResult {
	if t.cur.Peek(1) != '!' || t.cur.Peek(2) != '-' || t.cur.Peek(3) != '-' {
		return commentNone
	}
	for i := 0; i < 4; i++ {
		t.cur.Advance()
	}
	for {
		if t.cur.Byte() == 0 {
			return commentUnterminated
		}
		if t.cur.Byte() == '-' && t.cur.Peek(1) == '-' && t.cur.Peek(2) == '>' {
			t.cur.Advance()
			t.cur.Advance()
			t.cur.Advance()
			return commentOK
		}
		t.cur.Advance()
	}
}

// scanUnknown implements spec §4.2 point 5's KV1 dispatch table: a
// numeric-looking key is read as a bare string, not a number, so that
// "0", "-1" and similar remain valid object keys.
func (t *tokenizer) scanUnknown() kv.Token {
	b := t.cur.Byte()
	switch {
	case b == '"':
		content, errMsg := strscan.ScanQuotedNoUnicode(t.cur)
		if errMsg != "" {
			return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: errMsg}
		}
		return kv.Token{Kind: kv.TokString, Str: string(content)}
	case t.inKeySlot && (isDigit(b) || b == '-'):
		return t.scanBareString()
	case isDigit(b) || b == '-':
		return t.scanNumber()
	case isBareStart(b):
		return t.scanBareString()
	default:
		return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid character"}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isBareStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

// scanBareString implements spec §4.3b: consume while the byte is not
// whitespace or '='.
func (t *tokenizer) scanBareString() kv.Token {
	start := t.cur.Pos()
	for {
		b := t.cur.Byte()
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '=' || b == 0 {
			break
		}
		t.cur.Advance()
	}
	return kv.Token{Kind: kv.TokString, Offset: start, Str: string(t.cur.Slice(start, t.cur.Pos()))}
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
