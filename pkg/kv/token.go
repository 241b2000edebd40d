package kv

// TokenKind is the superset of token kinds produced across the three
// dialect tokenizers (spec §3, "Token").
type TokenKind int

const (
	TokObjBegin TokenKind = iota
	TokObjEnd
	TokArrBegin
	TokArrEnd
	TokString
	TokNumber
	TokBoolean
	TokNull
	TokColon // KV1 '='
	TokComma
	TokRef // KV0 '#'
	TokComment
	TokEnd
	TokWhitespace
	TokError
	TokUnknown
)

var tokenKindNames = [...]string{
	TokObjBegin:   "OBJ_BEGIN",
	TokObjEnd:     "OBJ_END",
	TokArrBegin:   "ARR_BEGIN",
	TokArrEnd:     "ARR_END",
	TokString:     "STRING",
	TokNumber:     "NUMBER",
	TokBoolean:    "BOOLEAN",
	TokNull:       "NULL",
	TokColon:      "COLON",
	TokComma:      "COMMA",
	TokRef:        "REF",
	TokComment:    "COMMENT",
	TokEnd:        "END",
	TokWhitespace: "WHITESPACE",
	TokError:      "ERROR",
	TokUnknown:    "UNKNOWN",
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "UNKNOWN_KIND"
}

// Token is one lexical unit recognized by a dialect tokenizer.
type Token struct {
	Kind   TokenKind
	Offset int // byte offset the token was recognized at

	Str     string  // STRING payload (borrow into the scratch buffer's owner)
	Num     float64 // NUMBER payload
	Boolean bool    // BOOLEAN payload

	ErrMsg string // ERROR payload: static message
}
