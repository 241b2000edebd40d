package kv0

import (
	"bytes"
	"math"
	"strconv"

	"github.com/ironleaf-games/kvtext/pkg/kv"
)

type emitter struct {
	cfg   *Config
	buf   *bytes.Buffer
	depth int
	array bool // encode2 mode: apply integer-key array detection
}

func newEmitter(cfg *Config, arrayMode bool) *emitter {
	buf := &bytes.Buffer{}
	if cfg.EncodeKeepBuffer && cfg.persistentBuf != nil {
		buf.Write(cfg.persistentBuf[:0])
	}
	return &emitter{cfg: cfg, buf: buf, array: arrayMode}
}

func (e *emitter) finish() []byte {
	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())
	if e.cfg.EncodeKeepBuffer {
		e.cfg.persistentBuf = e.buf.Bytes()[:0]
	}
	return out
}

// Encode implements spec §6.1 "encode" (KV0 map form): the root must be
// an object. Mirroring parseTop's grammar, only the root's first member
// is written, as a bare "key"\tvalue pair with no wrapping braces; an
// empty root encodes to nothing. Nested object values are unaffected —
// writeObjectBody's brace wrapping still applies to every value reached
// below the root.
func Encode(root *kv.Value, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if root.Kind() != kv.KindObject {
		return nil, kv.NewEncodeError("root value must be an object")
	}
	e := newEmitter(cfg, false)
	if err := e.writeRootPair(root); err != nil {
		return nil, err
	}
	return e.finish(), nil
}

// EncodeArray implements spec §6.1 "encode2": like Encode, but the
// root's single value is written in array mode, so any nested object
// whose keys are all positive integers (holes below the largest key are
// written as null), or literal kv.Array value, uses KV0's alternating-pair
// array convention, per spec §4.6's "KV0 array detection" and
// sparse-array policy.
func EncodeArray(root *kv.Value, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if root.Kind() != kv.KindObject {
		return nil, kv.NewEncodeError("root value must be an object")
	}
	e := newEmitter(cfg, true)
	if err := e.writeRootPair(root); err != nil {
		return nil, err
	}
	return e.finish(), nil
}

func (e *emitter) writeRootPair(root *kv.Value) error {
	members := root.Members()
	if len(members) == 0 {
		return nil
	}
	m := members[0]
	e.writeString(m.Key)
	e.buf.WriteByte('\t')
	return e.writeValue(m.Value)
}

func (e *emitter) indent() {
	if !e.cfg.Keepln {
		return
	}
	for i := 0; i < e.depth; i++ {
		e.buf.WriteByte('\t')
	}
}

func (e *emitter) newline() {
	if e.cfg.Keepln {
		e.buf.WriteByte('\n')
	}
}

func (e *emitter) writeObjectBody(obj *kv.Value) error {
	e.depth++
	if e.depth > e.cfg.EncodeMaxDepth {
		return kv.NewEncodeError("found too many nested data structures")
	}
	defer func() { e.depth-- }()

	e.buf.WriteByte('{')
	e.newline()

	if e.array {
		converted, isArr, err := e.asDeclaredArray(obj)
		if err != nil {
			return err
		}
		if isArr {
			return e.writeArrayBody(converted)
		}
	}

	for _, m := range obj.Members() {
		e.indent()
		e.writeString(m.Key)
		e.buf.WriteByte('\t')
		if err := e.writeValue(m.Value); err != nil {
			return err
		}
		e.newline()
	}
	e.indent()
	e.buf.WriteByte('}')
	return nil
}

// asDeclaredArray applies spec §4.6's array detection to obj: returns
// the values in index order 1..declaredLen (nil for holes) when obj's
// keys are all positive integers. isArr is false (and err nil) when obj
// should be emitted as a plain object because it has non-integer keys;
// err is non-nil when the table is sparse and EncodeSparseConvert is off.
func (e *emitter) asDeclaredArray(obj *kv.Value) (elems []*kv.Value, isArr bool, err error) {
	members := obj.Members()
	if len(members) == 0 {
		return nil, false, nil
	}
	maxKey := 0
	for _, m := range members {
		n, ok := arrayKey(m.Key)
		if !ok {
			return nil, false, nil
		}
		if n > maxKey {
			maxKey = n
		}
	}

	if e.cfg.isSparse(maxKey, len(members)) {
		if !e.cfg.EncodeSparseConvert {
			return nil, false, kv.NewEncodeError(
				"Array is too sparse, use __KeyValues_MaxKey__ or serialise as a table")
		}
		// Sparse but tolerated: fall back to plain object emission.
		return nil, false, nil
	}

	byIndex := make(map[int]*kv.Value, len(members))
	for _, m := range members {
		n, _ := arrayKey(m.Key)
		byIndex[n] = m.Value
	}
	out := make([]*kv.Value, maxKey)
	for i := 1; i <= maxKey; i++ {
		out[i-1] = byIndex[i] // nil hole -> emitted as null
	}
	return out, true, nil
}

// writeArrayBody implements spec §4.6's "encode2 only" array convention:
// elems is read two at a time, each pair written as "entry TAB entry",
// matching decode2's flat positional reading of the same braces. An odd
// element out (no partner) is paired with a null.
func (e *emitter) writeArrayBody(elems []*kv.Value) error {
	for i := 0; i < len(elems); i += 2 {
		e.indent()
		first := elems[i]
		if first == nil {
			first = kv.Null()
		}
		if err := e.writeValue(first); err != nil {
			return err
		}
		e.buf.WriteByte('\t')
		var second *kv.Value
		if i+1 < len(elems) {
			second = elems[i+1]
		}
		if second == nil {
			second = kv.Null()
		}
		if err := e.writeValue(second); err != nil {
			return err
		}
		e.newline()
	}
	e.indent()
	e.buf.WriteByte('}')
	return nil
}

func (e *emitter) writeValue(v *kv.Value) error {
	switch v.Kind() {
	case kv.KindString:
		e.writeString(v.Str())
		return nil
	case kv.KindNumber:
		return e.writeNumber(v.Num())
	case kv.KindNull:
		e.writeString("")
		return nil
	case kv.KindBoolean:
		if v.Bool() {
			e.writeString("1")
		} else {
			e.writeString("0")
		}
		return nil
	case kv.KindObject:
		return e.writeObjectBody(v)
	case kv.KindArray:
		if !e.array {
			return kv.NewEncodeError("cannot serialise array value in map form")
		}
		return e.writeArrayBody(v.Elems())
	default:
		return kv.NewEncodeError("cannot serialise value")
	}
}

func (e *emitter) writeString(s string) {
	e.buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		if escape, ok := escapeTable[b]; ok {
			e.buf.WriteString(escape)
		} else {
			e.buf.WriteByte(b)
		}
	}
	e.buf.WriteByte('"')
}

func (e *emitter) writeNumber(n float64) error {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		switch e.cfg.EncodeInvalidNumbers {
		case InvalidNumbersOff:
			return kv.NewEncodeError("cannot serialise NaN or Infinity")
		case InvalidNumbersNull:
			e.buf.WriteString("null")
			return nil
		case InvalidNumbersOn:
			e.buf.WriteString(invalidNumberLiteral(n))
			return nil
		}
	}
	// Written bare so Decode reads it back as a NUMBER token, not a string.
	e.buf.WriteString(strconv.FormatFloat(n, 'g', e.cfg.EncodeNumberPrecision, 64))
	return nil
}

func invalidNumberLiteral(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	default:
		return "-Infinity"
	}
}

// escapeTable maps bytes that require escaping in a KV0 string literal
// to their emitted form (spec §4.6 "string emission").
var escapeTable = map[byte]string{
	'"':  `\"`,
	'\\': `\\`,
	'\b': `\b`,
	'\t': `\t`,
	'\n': `\n`,
	'\f': `\f`,
	'\r': `\r`,
}

