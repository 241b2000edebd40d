package kv0

import "github.com/ironleaf-games/kvtext/pkg/kv"

// class is the tokenizer's outer-loop dispatch hint for a single byte
// (spec §4.1). It is narrower than kv.TokenKind: several classes (e.g.
// a quote byte, a digit) only mean "further inspection needed" and are
// resolved into a real kv.TokenKind by the string/number scanners.
type class int8

const (
	classError class = iota
	classWhitespace
	classObjBegin
	classObjEnd
	classComma
	classRef
	classComment
	classEnd
	classUnknown
)

// byteClass is the 256-entry KV0 byte classification table. Every byte
// starts ERROR; the dialect's vocabulary is overlaid in init.
var byteClass [256]class

func init() {
	for i := range byteClass {
		byteClass[i] = classError
	}

	byteClass['{'] = classObjBegin
	byteClass['}'] = classObjEnd
	byteClass[','] = classComma
	byteClass['#'] = classRef
	byteClass['/'] = classComment

	byteClass[' '] = classWhitespace
	byteClass['\t'] = classWhitespace
	byteClass['\r'] = classWhitespace
	byteClass['\n'] = classWhitespace

	byteClass[0] = classEnd

	for c := byte('0'); c <= '9'; c++ {
		byteClass[c] = classUnknown
	}
	byteClass['+'] = classUnknown
	byteClass['-'] = classUnknown
	byteClass['"'] = classUnknown

	// NOTE: KV0's original classifier never registers a-z/A-Z as
	// classUnknown, so `true`/`false`/`null` literals lexical-error
	// here rather than tokenizing as BOOLEAN/NULL. See DESIGN.md.
}

func classOf(b byte) class {
	return byteClass[b]
}

// classToTokenKind maps the single-character classes directly onto a
// Token kind; classUnknown and classError need further dispatch.
func classToTokenKind(c class) kv.TokenKind {
	switch c {
	case classObjBegin:
		return kv.TokObjBegin
	case classObjEnd:
		return kv.TokObjEnd
	case classComma:
		return kv.TokComma
	case classRef:
		return kv.TokRef
	case classWhitespace:
		return kv.TokWhitespace
	case classEnd:
		return kv.TokEnd
	default:
		return kv.TokError
	}
}
