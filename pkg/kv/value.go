// Package kv holds the value tree and error taxonomy shared by the kv0,
// kv1 and kv3 dialect packages: a tagged union of string, number, boolean,
// null, array and ordered-object nodes, identical across all three wire
// formats.
package kv

// Kind tags the concrete type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value entry of an Object, in insertion order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a node in a decoded KV0/KV1/KV3 tree. The zero Value is null.
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	arr     []*Value
	obj     []Member
}

// Null returns the null sentinel value.
func Null() *Value { return &Value{kind: KindNull} }

// String wraps a string leaf.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// Number wraps a float64 leaf.
func Number(n float64) *Value { return &Value{kind: KindNumber, num: n} }

// Bool wraps a boolean leaf.
func Bool(b bool) *Value { return &Value{kind: KindBoolean, boolean: b} }

// Array wraps a pre-built slice of elements. The slice is not copied.
func Array(elems ...*Value) *Value {
	if elems == nil {
		elems = []*Value{}
	}
	return &Value{kind: KindArray, arr: elems}
}

// Object returns a new, empty ordered object.
func Object() *Value {
	return &Value{kind: KindObject, obj: []Member{}}
}

// Kind reports the tag of v. A nil Value reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is the null sentinel (or nil).
func (v *Value) IsNull() bool { return v.Kind() == KindNull }

// Str returns the string payload; "" if v is not a string.
func (v *Value) Str() string {
	if v == nil || v.kind != KindString {
		return ""
	}
	return v.str
}

// Num returns the number payload; 0 if v is not a number.
func (v *Value) Num() float64 {
	if v == nil || v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Bool returns the boolean payload; false if v is not a boolean.
func (v *Value) Bool() bool {
	if v == nil || v.kind != KindBoolean {
		return false
	}
	return v.boolean
}

// Elems returns the array elements; nil if v is not an array. The
// returned slice must not be mutated by callers outside this package.
func (v *Value) Elems() []*Value {
	if v == nil || v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Len returns the number of array elements or object members; 0 otherwise.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Append adds elem to an array value in place and returns v for chaining.
// Panics if v is not an array.
func (v *Value) Append(elem *Value) *Value {
	if v.kind != KindArray {
		panic("kv: Append on non-array Value")
	}
	v.arr = append(v.arr, elem)
	return v
}

// Members returns the object's key/value pairs in insertion order; nil if
// v is not an object.
func (v *Value) Members() []Member {
	if v == nil || v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Get returns the first member's value for key, or nil if absent or v is
// not an object.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Has reports whether key is present in an object value.
func (v *Value) Has(key string) bool {
	return v.Get(key) != nil
}

// Set inserts or replaces key's value, preserving the position of an
// existing key and appending new keys at the end. Panics if v is not an
// object. Returns v for chaining.
func (v *Value) Set(key string, val *Value) *Value {
	if v.kind != KindObject {
		panic("kv: Set on non-object Value")
	}
	for i := range v.obj {
		if v.obj[i].Key == key {
			v.obj[i].Value = val
			return v
		}
	}
	v.obj = append(v.obj, Member{Key: key, Value: val})
	return v
}

// Equal reports deep structural equality: same kind, same payload, same
// array/member order. Used by round-trip property tests in place of
// reflect.DeepEqual so unexported fields never leak into failure output.
func (a *Value) Equal(b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindString:
		return a.Str() == b.Str()
	case KindNumber:
		return a.Num() == b.Num()
	case KindBoolean:
		return a.Bool() == b.Bool()
	case KindArray:
		ae, be := a.Elems(), b.Elems()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !ae[i].Equal(be[i]) {
				return false
			}
		}
		return true
	case KindObject:
		am, bm := a.Members(), b.Members()
		if len(am) != len(bm) {
			return false
		}
		for i := range am {
			if am[i].Key != bm[i].Key || !am[i].Value.Equal(bm[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
