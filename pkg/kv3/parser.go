package kv3

import "github.com/ironleaf-games/kvtext/pkg/kv"

type parser struct {
	tok   *tokenizer
	cfg   *Config
	depth int
}

func newParser(buf []byte, cfg *Config) *parser {
	return &parser{tok: newTokenizer(buf, cfg), cfg: cfg}
}

// parseTop implements the original decoder's top-level loop: a flat
// sequence of "key value" (or "key tag value") pairs with no wrapping
// braces, required to begin with a key string.
func (p *parser) parseTop() (*kv.Value, error) {
	root := kv.Object()

	tok := p.tok.Next()
	if tok.Kind == kv.TokError {
		return nil, kv.NewLexicalError(tok.ErrMsg, tok.Offset)
	}
	if tok.Kind != kv.TokString {
		return nil, p.unexpected(tok, "Must begin with string")
	}
	for {
		if err := p.parseMemberInto(root, tok.Str); err != nil {
			return nil, err
		}
		tok = p.tok.Next()
		if tok.Kind == kv.TokEnd {
			return root, nil
		}
		if tok.Kind == kv.TokError {
			return nil, kv.NewLexicalError(tok.ErrMsg, tok.Offset)
		}
		if tok.Kind != kv.TokString {
			return nil, p.unexpected(tok, "object key string")
		}
	}
}

// parseMemberInto implements parse_object_internal: a key already read
// as "key" is followed either by a tag string plus a value (wrapped as
// a [tag, value] pair) or directly by a container value (unwrapped).
func (p *parser) parseMemberInto(obj *kv.Value, key string) error {
	next := p.tok.Next()
	switch next.Kind {
	case kv.TokString:
		tag := next.Str
		valTok := p.tok.Next()
		val, err := p.parseValueFromToken(valTok)
		if err != nil {
			return err
		}
		obj.Set(key, kv.Array(kv.String(tag), val))
		return nil
	case kv.TokObjBegin, kv.TokArrBegin:
		val, err := p.parseValueFromToken(next)
		if err != nil {
			return err
		}
		obj.Set(key, val)
		return nil
	case kv.TokError:
		return kv.NewLexicalError(next.ErrMsg, next.Offset)
	default:
		return p.unexpected(next, "unexpected token")
	}
}

func (p *parser) parseValueFromToken(tok kv.Token) (*kv.Value, error) {
	switch tok.Kind {
	case kv.TokString:
		return kv.String(tok.Str), nil
	case kv.TokObjBegin:
		return p.parseObjectContext()
	case kv.TokArrBegin:
		return p.parseArrayContext()
	case kv.TokError:
		return nil, kv.NewLexicalError(tok.ErrMsg, tok.Offset)
	default:
		return nil, p.unexpected(tok, "value")
	}
}

// parseObjectContext implements ckv3_parse_object_context: OBJ_BEGIN has
// already been consumed by the caller's dispatch.
func (p *parser) parseObjectContext() (*kv.Value, error) {
	p.depth++
	if p.depth > p.cfg.DecodeMaxDepth {
		return nil, kv.NewStructuralError("found too many nested data structures", p.tok.cur.Pos())
	}
	defer func() { p.depth-- }()

	obj := kv.Object()
	tok := p.tok.Next()
	if tok.Kind == kv.TokObjEnd {
		return obj, nil
	}
	for {
		if tok.Kind != kv.TokString {
			return nil, p.unexpected(tok, "object key string")
		}
		if err := p.parseMemberInto(obj, tok.Str); err != nil {
			return nil, err
		}
		tok = p.tok.Next()
		if tok.Kind == kv.TokObjEnd {
			return obj, nil
		}
	}
}

// parseArrayContext implements ckv3_parse_array_context: two array
// values with no separating comma form one [tag, value] pair element;
// a comma ends a plain element (spec §4.6 "typed array elements").
func (p *parser) parseArrayContext() (*kv.Value, error) {
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
		first, err := p.parseValueFromToken(tok)
		if err != nil {
			return nil, err
		}

		next := p.tok.Next()
		switch next.Kind {
		case kv.TokComma:
			arr.Append(first)
			tok = p.tok.Next()
			if tok.Kind == kv.TokArrEnd {
				return arr, nil
			}
			continue
		case kv.TokArrEnd:
			arr.Append(first)
			return arr, nil
		default:
			second, err := p.parseValueFromToken(next)
			if err != nil {
				return nil, err
			}
			arr.Append(kv.Array(first, second))

			tok = p.tok.Next()
			switch tok.Kind {
			case kv.TokComma:
				tok = p.tok.Next()
				if tok.Kind == kv.TokArrEnd {
					return arr, nil
				}
				continue
			case kv.TokArrEnd:
				return arr, nil
			default:
				return nil, p.unexpected(tok, "',' or ']'")
			}
		}
	}
}

func (p *parser) unexpected(tok kv.Token, expected string) error {
	return kv.NewStructuralError("Expected "+expected+" but found "+tok.Kind.String(), tok.Offset)
}

// Decode implements spec §6.1 "decode": a flat top-level key/value
// sequence, members typed either as [tag, value] pairs or unwrapped
// containers.
func Decode(data []byte, cfg *Config) (*kv.Value, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return newParser(data, cfg).parseTop()
}
