package kv0

import (
	"github.com/ironleaf-games/kvtext/pkg/kv"
)

type parser struct {
	tok   *tokenizer
	cfg   *Config
	depth int
}

func newParser(buf []byte, cfg *Config) *parser {
	return &parser{tok: newTokenizer(buf, cfg), cfg: cfg}
}

// parseTop implements spec §4.5.1: a single "key" <value> pair at top
// level, or an empty object if the input is empty. The value is parsed
// in object mode; DecodeArray uses parseTopArray instead, which parses
// the value in array mode.
func (p *parser) parseTop() (*kv.Value, error) {
	root := kv.Object()

	first := p.tok.Next()
	if first.Kind == kv.TokEnd {
		return root, nil
	}
	if first.Kind != kv.TokString {
		return nil, p.unexpected(first, "a key string")
	}

	val, err := p.parseValue(false)
	if err != nil {
		return nil, err
	}
	root.Set(first.Str, val)
	return root, nil
}

// parseTopArray implements decode2's top level: the key is read in
// object mode, but the value recurses entirely in array mode, so any
// "{ ... }" reached from it is read as a flat value list rather than
// key/value pairs.
func (p *parser) parseTopArray() (*kv.Value, error) {
	root := kv.Object()

	first := p.tok.Next()
	if first.Kind == kv.TokEnd {
		return root, nil
	}
	if first.Kind != kv.TokString {
		return nil, p.unexpected(first, "a key string")
	}

	val, err := p.parseValue(true)
	if err != nil {
		return nil, err
	}
	root.Set(first.Str, val)
	return root, nil
}

// parseValue dispatches on the current token per spec §4.5.1's value
// table; the caller has already consumed the key token. arrayMode, once
// set, propagates to every nested "{ ... }" reached from this value.
func (p *parser) parseValue(arrayMode bool) (*kv.Value, error) {
	tok := p.tok.Next()
	switch tok.Kind {
	case kv.TokString:
		return kv.String(tok.Str), nil
	case kv.TokNumber:
		return kv.Number(tok.Num), nil
	case kv.TokObjBegin:
		if arrayMode {
			return p.parseArrayBody()
		}
		return p.parseObjectBody()
	case kv.TokError:
		return nil, kv.NewLexicalError(tok.ErrMsg, tok.Offset)
	default:
		return nil, p.unexpected(tok, "a value")
	}
}

// parseObjectBody implements the body grammar after OBJ_BEGIN has been
// consumed: a sequence of STRING value pairs until OBJ_END.
func (p *parser) parseObjectBody() (*kv.Value, error) {
	p.depth++
	if p.depth > p.cfg.DecodeMaxDepth {
		return nil, kv.NewStructuralError("found too many nested data structures", p.tok.cur.Pos())
	}
	defer func() { p.depth-- }()

	obj := kv.Object()
	for {
		key := p.tok.Next()
		if key.Kind == kv.TokObjEnd {
			return obj, nil
		}
		if key.Kind == kv.TokError {
			return nil, kv.NewLexicalError(key.ErrMsg, key.Offset)
		}
		if key.Kind != kv.TokString {
			return nil, p.unexpected(key, "a key string or '}'")
		}

		val, err := p.parseValue(false)
		if err != nil {
			return nil, err
		}
		obj.Set(key.Str, val)
	}
}

// parseArrayBody implements decode2's array context: unlike
// parseObjectBody, "{ ... }" is not read as key/value pairs. Every
// token encountered is itself the next value, appended positionally; a
// nested "{ ... }" recurses as another flat array body.
func (p *parser) parseArrayBody() (*kv.Value, error) {
	p.depth++
	if p.depth > p.cfg.DecodeMaxDepth {
		return nil, kv.NewStructuralError("found too many nested data structures", p.tok.cur.Pos())
	}
	defer func() { p.depth-- }()

	arr := kv.Array()
	for {
		tok := p.tok.Next()
		if tok.Kind == kv.TokObjEnd {
			return arr, nil
		}
		val, err := p.parseValueFromToken(tok, true)
		if err != nil {
			return nil, err
		}
		arr.Append(val)
	}
}

func (p *parser) parseValueFromToken(tok kv.Token, arrayMode bool) (*kv.Value, error) {
	switch tok.Kind {
	case kv.TokString:
		return kv.String(tok.Str), nil
	case kv.TokNumber:
		return kv.Number(tok.Num), nil
	case kv.TokObjBegin:
		if arrayMode {
			return p.parseArrayBody()
		}
		return p.parseObjectBody()
	case kv.TokError:
		return nil, kv.NewLexicalError(tok.ErrMsg, tok.Offset)
	default:
		return nil, p.unexpected(tok, "a value")
	}
}

func (p *parser) unexpected(tok kv.Token, expected string) error {
	return kv.NewStructuralError("Expected "+expected+" but found "+tok.Kind.String(), tok.Offset)
}

// Decode parses a single KV0 buffer into a tree (spec §6.1 "decode").
func Decode(data []byte, cfg *Config) (*kv.Value, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return newParser(data, cfg).parseTop()
}
