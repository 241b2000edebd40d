package kv3

import "github.com/ironleaf-games/kvtext/pkg/kv"

// class mirrors the KV3 byte classification table from the original
// source: unlike KV0/KV1, digits, '+', '-', letters and '=' are never
// given a token meaning of their own. KV3 values are always quoted
// strings; there is no bare number or bare identifier syntax.
type class int8

const (
	classError class = iota
	classWhitespace
	classObjBegin
	classObjEnd
	classArrBegin
	classArrEnd
	classComma
	classCommentStart
	classEnd
	classString // '"'
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
	byteClass['<'] = classCommentStart

	byteClass[' '] = classWhitespace
	byteClass['\t'] = classWhitespace
	byteClass['\r'] = classWhitespace
	byteClass['\n'] = classWhitespace

	byteClass[0] = classEnd
	byteClass['"'] = classString
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
	case classWhitespace:
		return kv.TokWhitespace
	case classEnd:
		return kv.TokEnd
	default:
		return kv.TokError
	}
}
