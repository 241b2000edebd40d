package kv1

import (
	"bytes"
	"strconv"

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

// Encode implements spec §6.1 "encode": root must be an object; its
// members are written as a flat "key=value" sequence with no wrapping
// braces (spec §4.5.2).
func Encode(root *kv.Value, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if root.Kind() != kv.KindObject {
		return nil, kv.NewEncodeError("root value must be an object")
	}
	e := newEmitter(cfg)
	if err := e.writeMembers(root); err != nil {
		return nil, err
	}
	return e.finish(), nil
}

// EncodeArray implements spec §6.1 "encode_array": root must be an
// array; it is written using the __IsArray__ sentinel convention (spec
// §4.6) so the result still parses as a flat top-level key=value
// sequence.
func EncodeArray(root *kv.Value, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if root.Kind() != kv.KindArray {
		return nil, kv.NewEncodeError("root value must be an array")
	}
	e := newEmitter(cfg)
	if err := e.writeSentinelMembers(root); err != nil {
		return nil, err
	}
	return e.finish(), nil
}

func (e *emitter) writeMembers(obj *kv.Value) error {
	for i, m := range obj.Members() {
		if i > 0 {
			e.buf.WriteByte(' ')
		}
		e.writeKeyString(m.Key)
		e.buf.WriteByte('=')
		if err := e.writeValue(m.Value); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) writeSentinelMembers(arr *kv.Value) error {
	elems := arr.Elems()
	for i, v := range elems {
		if i > 0 {
			e.buf.WriteByte(' ')
		}
		e.writeKeyString(strconv.Itoa(i))
		e.buf.WriteByte('=')
		if err := e.writeValue(v); err != nil {
			return err
		}
	}
	if len(elems) > 0 {
		e.buf.WriteByte(' ')
	}
	e.writeKeyString(isArraySentinel)
	e.buf.WriteByte('=')
	e.buf.WriteString("true")
	return nil
}

func (e *emitter) writeValue(v *kv.Value) error {
	switch v.Kind() {
	case kv.KindString:
		e.writeValueString(v.Str())
		return nil
	case kv.KindNumber:
		// always a valid bare NUMBER token on decode; quoting it would
		// turn it into a string and break the round trip.
		e.buf.WriteString(strconv.FormatFloat(v.Num(), 'g', e.cfg.EncodeNumberPrecision, 64))
		return nil
	case kv.KindNull:
		e.buf.WriteString("null")
		return nil
	case kv.KindBoolean:
		if v.Bool() {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
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
	if err := e.writeMembers(obj); err != nil {
		return err
	}
	// A bare value runs until whitespace on decode, so it must not touch '}'.
	e.buf.WriteString(" }")
	return nil
}

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
		if err := e.writeValue(v); err != nil {
			return err
		}
		// Keep a bare value from running into the following ',' or ']'.
		e.buf.WriteByte(' ')
	}
	e.buf.WriteByte(']')
	return nil
}

// writeKeyString emits a key, which may be a bare numeric-looking
// identifier (spec §4.3b: keys in key slot position read as strings
// regardless of a leading digit).
func (e *emitter) writeKeyString(s string) {
	if canBeBareKey(s) {
		e.buf.WriteString(s)
		return
	}
	e.writeQuoted(s)
}

// writeValueString emits a value-position string. A leading digit or
// '-'/'+' would tokenize as NUMBER on decode, so only letter/underscore
// leading bare strings are safe to leave unquoted here.
func (e *emitter) writeValueString(s string) {
	if canBeBareValue(s) {
		e.buf.WriteString(s)
		return
	}
	e.writeQuoted(s)
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

func canBeBareKey(s string) bool {
	return s != "" && !bytes.ContainsAny([]byte(s), " \t\r\n=\"{}[],")
}

func canBeBareValue(s string) bool {
	if !canBeBareKey(s) {
		return false
	}
	return isBareStart(s[0])
}
