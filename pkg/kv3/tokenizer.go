package kv3

import (
	"github.com/ironleaf-games/kvtext/internal/cursor"
	"github.com/ironleaf-games/kvtext/internal/strscan"
	"github.com/ironleaf-games/kvtext/pkg/kv"
)

type tokenizer struct {
	cur *cursor.Cursor
	cfg *Config
}

func newTokenizer(buf []byte, cfg *Config) *tokenizer {
	return &tokenizer{cur: cursor.New(buf), cfg: cfg}
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
				return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid token"}
			case commentUnterminated:
				return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "unterminated comment"}
			case commentOK:
				continue
			}
		case classError:
			return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid token"}
		case classEnd:
			return kv.Token{Kind: kv.TokEnd, Offset: t.cur.Pos()}
		case classObjBegin, classObjEnd, classArrBegin, classArrEnd, classComma:
			offset := t.cur.Pos()
			kind := classToTokenKind(c)
			t.cur.Advance()
			return kv.Token{Kind: kind, Offset: offset}
		case classString:
			start := t.cur.Pos()
			content, errMsg := strscan.ScanQuotedNoUnicode(t.cur)
			if errMsg != "" {
				return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: errMsg}
			}
			return kv.Token{Kind: kv.TokString, Offset: start, Str: string(content)}
		default:
			return kv.Token{Kind: kv.TokError, Offset: t.cur.Pos(), ErrMsg: "invalid token"}
		}
	}
}

type commentResult int8

const (
	commentNone commentResult = iota
	commentOK
	commentUnterminated
)

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
