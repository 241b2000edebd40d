package kv1

import "github.com/ironleaf-games/kvtext/pkg/kv"

// class is the KV1 tokenizer's outer-loop dispatch hint for a single byte
// (spec §4.1). Unlike KV0, KV1 registers a-z/A-Z as classUnknown: bare
// (unquoted) identifiers are part of the grammar, not an ambiguity.
type class int8

const (
	classError class = iota
	classWhitespace
	classObjBegin
	classObjEnd
	classArrBegin
	classArrEnd
	classComma
	classColon
	classCommentStart // '<', only a real comment if followed by "!--"
	classEnd
	classUnknown
)

var byteClass [256]class

func init() {
	for i := range byteClass {
		byteClass[i] = classError
	}

	byteClass['{'] = classObjBegin
	byteClass['}'] = classObjEnd
	byteClass['['] = classArrBegin
	byteClass[']'] = classArrEnd
	byteClass[','] = classComma
	byteClass['='] = classColon
	byteClass['<'] = classCommentStart

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

	for c := byte('a'); c <= 'z'; c++ {
		byteClass[c] = classUnknown
	}
	for c := byte('A'); c <= 'Z'; c++ {
		byteClass[c] = classUnknown
	}
	byteClass['_'] = classUnknown
}

func classOf(b byte) class {
	return byteClass[b]
}

func classToTokenKind(c class) kv.TokenKind {
	switch c {
	case classObjBegin:
		return kv.TokObjBegin
	case classObjEnd:
		return kv.TokObjEnd
	case classArrBegin:
		return kv.TokArrBegin
	case classArrEnd:
		return kv.TokArrEnd
	case classComma:
		return kv.TokComma
	case classColon:
		return kv.TokColon
	case classWhitespace:
		return kv.TokWhitespace
	case classEnd:
		return kv.TokEnd
	default:
		return kv.TokError
	}
}
