package kv1

import "github.com/ironleaf-games/kvtext/pkg/kv"

// isArraySentinel is the member name KV1 uses to mark an object as the
// array-mode encoding of a kv.Array (spec §4.6 "KV1 array convention"):
// KV1's top-level grammar is a flat key=value sequence, so a document
// whose root value is logically an array carries its elements under
// integer-string keys plus this sentinel set true.
const isArraySentinel = "__IsArray__"

type parser struct {
	tok   *tokenizer
	cfg   *Config
	depth int
}

func newParser(buf []byte, cfg *Config) *parser {
	return &parser{tok: newTokenizer(buf, cfg), cfg: cfg}
}

// parseTop implements the original decoder's two top-level forms: a
// document whose first token is itself "{" is parsed as a single value
// and must be followed immediately by END; otherwise the document is a
// flat sequence of key[=value] pairs read until END.
func (p *parser) parseTop() (*kv.Value, error) {
	p.tok.inKeySlot = true
	first := p.tok.Next()
	p.tok.inKeySlot = false

	switch first.Kind {
	case kv.TokEnd:
		return kv.Object(), nil
	case kv.TokObjBegin:
		val, err := p.parseValueFromToken(first)
		if err != nil {
			return nil, err
		}
		end := p.tok.Next()
		if end.Kind != kv.TokEnd {
			return nil, p.unexpected(end, "the end")
		}
		return val, nil
	}

	root := kv.Object()
	key := first
	for {
		if err := p.parseOneMember(root, key); err != nil {
			return nil, err
		}
		p.tok.inKeySlot = true
		key = p.tok.Next()
		p.tok.inKeySlot = false
		if key.Kind == kv.TokEnd {
			return root, nil
		}
	}
}

// keyString converts an already-read key token into the string used as
// an object member name, accepting the bare numeric-looking keys that
// KV1's key-slot dispatch allows (spec §4.3b).
func (p *parser) keyString(tok kv.Token) (string, error) {
	switch tok.Kind {
	case kv.TokString:
		return tok.Str, nil
	case kv.TokNumber:
		return numberKeyString(tok.Num), nil
	case kv.TokError:
		return "", kv.NewLexicalError(tok.ErrMsg, tok.Offset)
	default:
		return "", p.unexpected(tok, "a key")
	}
}

// valueTokenForKey implements the original's "compatibility" rule: the
// '=' after a key is optional. If the token following the key is a
// colon it is consumed and the token after that is the value; otherwise
// the token already read IS the value, with no separate fetch.
func (p *parser) valueTokenForKey() (kv.Token, error) {
	next := p.tok.Next()
	if next.Kind == kv.TokColon {
		return p.tok.Next(), nil
	}
	return next, nil
}

// parseOneMember consumes the value for an already-read key token using
// the optional-colon rule and stores it into obj.
func (p *parser) parseOneMember(obj *kv.Value, key kv.Token) error {
	keyStr, err := p.keyString(key)
	if err != nil {
		return err
	}
	valTok, err := p.valueTokenForKey()
	if err != nil {
		return err
	}
	val, err := p.parseValueFromToken(valTok)
	if err != nil {
		return err
	}
	obj.Set(keyStr, val)
	return nil
}

func (p *parser) parseValueFromToken(tok kv.Token) (*kv.Value, error) {
	switch tok.Kind {
	case kv.TokString:
		return kv.String(tok.Str), nil
	case kv.TokNumber:
		return kv.Number(tok.Num), nil
	case kv.TokObjBegin:
		return p.parseObjectBody()
	case kv.TokArrBegin:
		return p.parseArrayBody()
	case kv.TokError:
		return nil, kv.NewLexicalError(tok.ErrMsg, tok.Offset)
	default:
		return nil, p.unexpected(tok, "a value")
	}
}

// parseObjectBody consumes key[=value] pairs until OBJ_END. OBJ_BEGIN has
// already been consumed by the caller.
//
// If the first token inside the braces is itself OBJ_BEGIN, the body is
// treated as wrapping a foreign (KV3-flavoured) fragment: the token after
// it (the fragment's tag) is silently discarded, the token after that is
// read as the first member key, and, on the way back out through OBJ_END,
// one extra token is consumed to resync the stream around the fragment
// without attempting to parse its contents.
func (p *parser) parseObjectBody() (*kv.Value, error) {
	p.depth++
	if p.depth > p.cfg.DecodeMaxDepth {
		return nil, kv.NewStructuralError("found too many nested data structures", p.tok.cur.Pos())
	}
	defer func() { p.depth-- }()

	obj := kv.Object()

	p.tok.inKeySlot = true
	key := p.tok.Next()
	p.tok.inKeySlot = false

	if key.Kind == kv.TokObjEnd {
		return obj, nil
	}

	hasNestKV3 := false
	if key.Kind == kv.TokObjBegin {
		hasNestKV3 = true
		p.tok.inKeySlot = true
		p.tok.Next()
		key = p.tok.Next()
		p.tok.inKeySlot = false
	}

	for {
		if key.Kind == kv.TokObjEnd {
			if hasNestKV3 {
				p.tok.Next()
			}
			return obj, nil
		}
		if key.Kind == kv.TokError {
			return nil, kv.NewLexicalError(key.ErrMsg, key.Offset)
		}
		if err := p.parseOneMember(obj, key); err != nil {
			return nil, err
		}
		p.tok.inKeySlot = true
		key = p.tok.Next()
		p.tok.inKeySlot = false
	}
}

// parseArrayBody consumes array elements until ARR_END. Between elements
// a single token is read and discarded as a separator without checking
// that it is actually a comma, matching the original's lenient array
// loop; a second token is then read as (or to check for the end of) the
// next element.
func (p *parser) parseArrayBody() (*kv.Value, error) {
	p.depth++
	if p.depth > p.cfg.DecodeMaxDepth {
		return nil, kv.NewStructuralError("found too many nested data structures", p.tok.cur.Pos())
	}
	defer func() { p.depth-- }()

	arr := kv.Array()
	tok := p.tok.Next()
	if tok.Kind == kv.TokArrEnd {
		return arr, nil
	}

	for {
		val, err := p.parseValueFromToken(tok)
		if err != nil {
			return nil, err
		}
		arr.Append(val)

		sep := p.tok.Next()
		if sep.Kind == kv.TokArrEnd {
			return arr, nil
		}
		if sep.Kind == kv.TokError {
			return nil, kv.NewLexicalError(sep.ErrMsg, sep.Offset)
		}

		tok = p.tok.Next()
		if tok.Kind == kv.TokArrEnd {
			return arr, nil
		}
	}
}

func (p *parser) unexpected(tok kv.Token, expected string) error {
	return kv.NewStructuralError("Expected "+expected+" but found "+tok.Kind.String(), tok.Offset)
}

func numberKeyString(n float64) string {
	if n == float64(int64(n)) {
		return itoa(int64(n))
	}
	return ftoa(n)
}

// Decode implements spec §6.1 "decode": parses a KV1 document and folds
// any object carrying the __IsArray__ sentinel into a kv.Array, wherever
// it appears in the tree.
func Decode(data []byte, cfg *Config) (*kv.Value, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	root, err := newParser(data, cfg).parseTop()
	if err != nil {
		return nil, err
	}
	return foldSentinelArrays(root), nil
}

// DecodeArray implements spec §6.1 "decode_array". The original's
// array-mode entry point has its own top-level grammar, distinct from
// Decode's: a document starting with "{" is a single wrapped value; a
// document starting with "[" is that array with "__IsArray__" prepended;
// an empty document is an empty array; otherwise every top-level member's
// value (its key, if any, discarded) is appended positionally.
func DecodeArray(data []byte, cfg *Config) (*kv.Value, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p := newParser(data, cfg)

	p.tok.inKeySlot = true
	first := p.tok.Next()
	p.tok.inKeySlot = false

	switch first.Kind {
	case kv.TokEnd:
		return kv.Array(), nil
	case kv.TokObjBegin:
		val, err := p.parseValueFromToken(first)
		if err != nil {
			return nil, err
		}
		end := p.tok.Next()
		if end.Kind != kv.TokEnd {
			return nil, p.unexpected(end, "the end")
		}
		return foldSentinelArrays(val), nil
	case kv.TokArrBegin:
		// a bare array literal document: the result carries the same
		// __IsArray__ marker encode_array produces, but as the array's
		// own leading element rather than an object member.
		val, err := p.parseValueFromToken(first)
		if err != nil {
			return nil, err
		}
		end := p.tok.Next()
		if end.Kind != kv.TokEnd {
			return nil, p.unexpected(end, "the end")
		}
		folded := foldSentinelArrays(val)
		elems := append([]*kv.Value{kv.String(isArraySentinel)}, folded.Elems()...)
		return kv.Array(elems...), nil
	}

	arr := kv.Array()
	key := first
	for {
		if _, err := p.keyString(key); err != nil {
			return nil, err
		}
		valTok, err := p.valueTokenForKey()
		if err != nil {
			return nil, err
		}
		val, err := p.parseValueFromToken(valTok)
		if err != nil {
			return nil, err
		}
		arr.Append(foldSentinelArrays(val))

		p.tok.inKeySlot = true
		key = p.tok.Next()
		p.tok.inKeySlot = false
		if key.Kind == kv.TokEnd {
			return arr, nil
		}
	}
}

func foldSentinelArrays(v *kv.Value) *kv.Value {
	if v.Kind() != kv.KindArray {
		if v.Kind() == kv.KindObject {
			for _, m := range v.Members() {
				folded := foldSentinelArrays(m.Value)
				if folded != m.Value {
					v.Set(m.Key, folded)
				}
			}
			if v.Get(isArraySentinel) != nil {
				return sentinelToArray(v)
			}
		}
		return v
	}
	for i, e := range v.Elems() {
		v.Elems()[i] = foldSentinelArrays(e)
	}
	return v
}

func sentinelToArray(obj *kv.Value) *kv.Value {
	var elems []*kv.Value
	for i := 0; ; i++ {
		m := obj.Get(itoa(int64(i)))
		if m == nil {
			break
		}
		elems = append(elems, m)
	}
	return kv.Array(elems...)
}
