package kv3

import (
	"bytes"

	"github.com/ironleaf-games/kvtext/pkg/kv"
)

type emitter struct {
	cfg   *Config
	buf   *bytes.Buffer
	depth int
}

func newEmitter(cfg *Config) *emitter {
	buf := &bytes.Buffer{}
	if cfg.EncodeKeepBuffer && cfg.persistentBuf != nil {
		buf.Write(cfg.persistentBuf[:0])
	}
	return &emitter{cfg: cfg, buf: buf}
}

func (e *emitter) finish() []byte {
	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())
	if e.cfg.EncodeKeepBuffer {
		e.cfg.persistentBuf = e.buf.Bytes()[:0]
	}
	return out
}

// Encode implements spec §6.1 "encode": root must be an object; members
// are written as a flat "key value" sequence with no wrapping braces,
// the inverse of Decode's parseTop.
func Encode(root *kv.Value, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if root.Kind() != kv.KindObject {
		return nil, kv.NewEncodeError("root value must be an object")
	}
	e := newEmitter(cfg)
	for i, m := range root.Members() {
		if i > 0 {
			e.buf.WriteByte('\n')
		}
		e.writeQuoted(m.Key)
		e.buf.WriteByte(' ')
		if err := e.writeMemberValue(m.Value); err != nil {
			return nil, err
		}
	}
	return e.finish(), nil
}

// isTagPair reports whether v is the [tag, value] encoding of a typed
// scalar (spec §4.6): a 2-element array whose first element is a string.
func isTagPair(v *kv.Value) bool {
	if v.Kind() != kv.KindArray || v.Len() != 2 {
		return false
	}
	return v.Elems()[0].Kind() == kv.KindString
}

// writeMemberValue emits an object member's value: either a [tag,
// value] pair written bare ("tag" value, no brackets) or a container
// written directly, mirroring parse_object_internal's two cases.
func (e *emitter) writeMemberValue(v *kv.Value) error {
	switch {
	case isTagPair(v):
		e.writeQuoted(v.Elems()[0].Str())
		e.buf.WriteByte(' ')
		return e.writeValue(v.Elems()[1])
	case v.Kind() == kv.KindObject, v.Kind() == kv.KindArray:
		return e.writeValue(v)
	default:
		return kv.NewEncodeError("cannot serialise value: object members must be a [tag, value] pair or a container")
	}
}

func (e *emitter) writeValue(v *kv.Value) error {
	switch v.Kind() {
	case kv.KindString:
		e.writeQuoted(v.Str())
		return nil
	case kv.KindObject:
		return e.writeObject(v)
	case kv.KindArray:
		return e.writeArray(v)
	default:
		return kv.NewEncodeError("cannot serialise value")
	}
}

func (e *emitter) writeObject(obj *kv.Value) error {
	e.depth++
	if e.depth > e.cfg.EncodeMaxDepth {
		return kv.NewEncodeError("found too many nested data structures")
	}
	defer func() { e.depth-- }()

	e.buf.WriteByte('{')
	for i, m := range obj.Members() {
		if i > 0 {
			e.buf.WriteByte('\n')
		}
		e.writeQuoted(m.Key)
		e.buf.WriteByte(' ')
		if err := e.writeMemberValue(m.Value); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

// writeArray implements the inverse of parseArrayContext: a plain
// element is comma-separated, a [tag, value] pair element is written
// as two consecutive values with no comma between them.
func (e *emitter) writeArray(arr *kv.Value) error {
	e.depth++
	if e.depth > e.cfg.EncodeMaxDepth {
		return kv.NewEncodeError("found too many nested data structures")
	}
	defer func() { e.depth-- }()

	e.buf.WriteByte('[')
	for i, v := range arr.Elems() {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if isTagPair(v) {
			if err := e.writeValue(v.Elems()[0]); err != nil {
				return err
			}
			e.buf.WriteByte(' ')
			if err := e.writeValue(v.Elems()[1]); err != nil {
				return err
			}
			continue
		}
		if err := e.writeValue(v); err != nil {
			return err
		}
	}
	e.buf.WriteByte(']')
	return nil
}

func (e *emitter) writeQuoted(s string) {
	e.buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		default:
			e.buf.WriteByte(b)
		}
	}
	e.buf.WriteByte('"')
}
