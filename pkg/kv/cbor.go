package kv

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// wireValue is the CBOR-stable encoding of a Value: a tagged union
// carrying only the fields relevant to its Kind, mirroring the
// canonical-node pattern used elsewhere for deterministic hashing.
type wireValue struct {
	Kind    uint8        `cbor:"kind"`
	Str     string       `cbor:"str,omitempty"`
	Num     float64      `cbor:"num,omitempty"`
	Boolean bool         `cbor:"bool,omitempty"`
	Arr     []wireValue  `cbor:"arr,omitempty"`
	Obj     []wireMember `cbor:"obj,omitempty"`
}

type wireMember struct {
	Key   string    `cbor:"key"`
	Value wireValue `cbor:"value"`
}

func toWire(v *Value) wireValue {
	switch v.Kind() {
	case KindString:
		return wireValue{Kind: uint8(KindString), Str: v.Str()}
	case KindNumber:
		return wireValue{Kind: uint8(KindNumber), Num: v.Num()}
	case KindBoolean:
		return wireValue{Kind: uint8(KindBoolean), Boolean: v.Bool()}
	case KindArray:
		elems := v.Elems()
		out := make([]wireValue, len(elems))
		for i, e := range elems {
			out[i] = toWire(e)
		}
		return wireValue{Kind: uint8(KindArray), Arr: out}
	case KindObject:
		members := v.Members()
		out := make([]wireMember, len(members))
		for i, m := range members {
			out[i] = wireMember{Key: m.Key, Value: toWire(m.Value)}
		}
		return wireValue{Kind: uint8(KindObject), Obj: out}
	default:
		return wireValue{Kind: uint8(KindNull)}
	}
}

func fromWire(w wireValue) *Value {
	switch Kind(w.Kind) {
	case KindString:
		return String(w.Str)
	case KindNumber:
		return Number(w.Num)
	case KindBoolean:
		return Bool(w.Boolean)
	case KindArray:
		elems := make([]*Value, len(w.Arr))
		for i, e := range w.Arr {
			elems[i] = fromWire(e)
		}
		return Array(elems...)
	case KindObject:
		obj := Object()
		for _, m := range w.Obj {
			obj.Set(m.Key, fromWire(m.Value))
		}
		return obj
	default:
		return Null()
	}
}

// MarshalCBOR produces a deterministic CBOR snapshot of v. All three
// dialect decoders return the same Value shape, so a tree decoded from
// KV0, KV1 or KV3 source hashes and compares the same way once it
// reaches this encoding.
func MarshalCBOR(v *Value) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("kv: building canonical CBOR encoder: %w", err)
	}
	data, err := encMode.Marshal(toWire(v))
	if err != nil {
		return nil, fmt.Errorf("kv: CBOR encoding failed: %w", err)
	}
	return data, nil
}

// UnmarshalCBOR parses a snapshot produced by MarshalCBOR back into a
// Value tree.
func UnmarshalCBOR(data []byte) (*Value, error) {
	var w wireValue
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("kv: CBOR decoding failed: %w", err)
	}
	return fromWire(w), nil
}

// SnapshotHash returns the SHA-256 digest of v's canonical CBOR
// encoding, so two trees decoded from different dialects (or different
// instances of the same dialect) can be compared for equality without
// holding either one in memory.
func SnapshotHash(v *Value) ([32]byte, error) {
	data, err := MarshalCBOR(v)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}
