package kv1_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironleaf-games/kvtext/pkg/kv"
	"github.com/ironleaf-games/kvtext/pkg/kv1"
)

func TestDecodeFlatKeyValue(t *testing.T) {
	tree, err := kv1.Decode([]byte(`name=value count=3 active=true`), nil)
	require.NoError(t, err)
	require.Equal(t, "value", tree.Get("name").Str())
	require.Equal(t, float64(3), tree.Get("count").Num())
	require.Equal(t, "true", tree.Get("active").Str())
}

func TestDecodeColonIsOptional(t *testing.T) {
	tree, err := kv1.Decode([]byte(`name value count 3`), nil)
	require.NoError(t, err)
	require.Equal(t, "value", tree.Get("name").Str())
	require.Equal(t, float64(3), tree.Get("count").Num())
}

func TestDecodeNumericLooksLikeKeyStaysString(t *testing.T) {
	tree, err := kv1.Decode([]byte(`0=zero -1=negone`), nil)
	require.NoError(t, err)
	require.Equal(t, "zero", tree.Get("0").Str())
	require.Equal(t, "negone", tree.Get("-1").Str())
}

func TestDecodePlusIsAlwaysInvalid(t *testing.T) {
	_, err := kv1.Decode([]byte(`key=+1`), nil)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Lexical))
}

func TestDecodeNestedObject(t *testing.T) {
	tree, err := kv1.Decode([]byte(`outer={inner=5}`), nil)
	require.NoError(t, err)
	require.Equal(t, float64(5), tree.Get("outer").Get("inner").Num())
}

func TestDecodeTopLevelBareObjectForm(t *testing.T) {
	tree, err := kv1.Decode([]byte(`{ key=value }`), nil)
	require.NoError(t, err)
	require.Equal(t, "value", tree.Get("key").Str())
}

func TestDecodeBlockComment(t *testing.T) {
	tree, err := kv1.Decode([]byte(`key <!-- a comment -->=value`), nil)
	require.NoError(t, err)
	require.Equal(t, "value", tree.Get("key").Str())
}

func TestDecodeUnterminatedBlockComment(t *testing.T) {
	_, err := kv1.Decode([]byte(`key <!-- never closes`), nil)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Lexical))
}

func TestDecodeArrayLiteral(t *testing.T) {
	tree, err := kv1.Decode([]byte(`list=[1,2,3]`), nil)
	require.NoError(t, err)
	list := tree.Get("list")
	require.Equal(t, kv.KindArray, list.Kind())
	require.Equal(t, 3, list.Len())
	require.Equal(t, float64(2), list.Elems()[1].Num())
}

func TestDecodeArrayLenientSeparator(t *testing.T) {
	// a non-comma token between elements is tolerated and discarded.
	tree, err := kv1.Decode([]byte(`list=[1 x 2]`), nil)
	require.NoError(t, err)
	list := tree.Get("list")
	require.Equal(t, 2, list.Len())
}

func TestEncodeBooleanAndNullAreBareLiterals(t *testing.T) {
	root := kv.Object()
	root.Set("a", kv.Bool(true))
	root.Set("b", kv.Bool(false))
	root.Set("c", kv.Null())

	out, err := kv1.Encode(root, nil)
	require.NoError(t, err)
	require.Contains(t, string(out), "a=true")
	require.Contains(t, string(out), "b=false")
	require.Contains(t, string(out), "c=null")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	root := kv.Object()
	root.Set("name", kv.String("value"))
	root.Set("nested", kv.Object().Set("inner", kv.Number(9)))

	out, err := kv1.Encode(root, nil)
	require.NoError(t, err)

	back, err := kv1.Decode(out, nil)
	require.NoError(t, err)
	require.True(t, root.Equal(back))
}

func TestEncodeNumberIsNeverQuoted(t *testing.T) {
	root := kv.Object()
	root.Set("n", kv.Number(9))

	out, err := kv1.Encode(root, nil)
	require.NoError(t, err)
	require.NotContains(t, string(out), `"9"`)

	back, err := kv1.Decode(out, nil)
	require.NoError(t, err)
	require.Equal(t, kv.KindNumber, back.Get("n").Kind())
	require.Equal(t, float64(9), back.Get("n").Num())
}

func TestEncodeArrayRoundTripsThroughDecode(t *testing.T) {
	// encode_array's __IsArray__ sentinel is only unfolded by Decode, not
	// DecodeArray: DecodeArray has its own, unrelated flat top-level form.
	arr := kv.Array(kv.String("a"), kv.Number(2), kv.String("c"))

	out, err := kv1.EncodeArray(arr, nil)
	require.NoError(t, err)

	back, err := kv1.Decode(out, nil)
	require.NoError(t, err)
	require.Equal(t, kv.KindArray, back.Kind())
	require.True(t, arr.Equal(back))
}

func TestDecodeArrayEmptyDocument(t *testing.T) {
	tree, err := kv1.DecodeArray(nil, nil)
	require.NoError(t, err)
	require.Equal(t, kv.KindArray, tree.Kind())
	require.Equal(t, 0, tree.Len())
}

func TestDecodeArrayFlatPositionalForm(t *testing.T) {
	// the keys are discarded; only the values are collected positionally.
	tree, err := kv1.DecodeArray([]byte(`a=1 b=2 c=3`), nil)
	require.NoError(t, err)
	require.Equal(t, 3, tree.Len())
	require.Equal(t, float64(1), tree.Elems()[0].Num())
	require.Equal(t, float64(3), tree.Elems()[2].Num())
}

func TestDecodeArrayBareArrayLiteral(t *testing.T) {
	tree, err := kv1.DecodeArray([]byte(`[ "a", "b" ]`), nil)
	require.NoError(t, err)
	require.Equal(t, kv.KindArray, tree.Kind())
	require.Equal(t, 3, tree.Len())
	require.Equal(t, "__IsArray__", tree.Elems()[0].Str())
	require.Equal(t, "a", tree.Elems()[1].Str())
	require.Equal(t, "b", tree.Elems()[2].Str())
}

func TestNestedKV3FragmentToleration(t *testing.T) {
	// an object body whose first token is itself "{" is treated as
	// wrapping a foreign fragment: the tag is discarded, the remaining
	// tokens are read as ordinary members up to the first "}", and the
	// second "}" is discarded as one extra token on the way back out.
	tree, err := kv1.Decode([]byte(`field={{"tag" "k" "v"}}`), nil)
	require.NoError(t, err)
	require.Equal(t, "v", tree.Get("field").Get("k").Str())
}

func TestDecodeMaxDepthExceeded(t *testing.T) {
	cfg := kv1.DefaultConfig()
	cfg.DecodeMaxDepth = 2

	_, err := kv1.Decode([]byte(`a={b={c={d=1}}}`), cfg)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Structural))
}

func TestEncodeRejectsNonObjectRoot(t *testing.T) {
	_, err := kv1.Encode(kv.String("nope"), nil)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Encode))
}

func TestEncodeArrayRejectsNonArrayRoot(t *testing.T) {
	_, err := kv1.EncodeArray(kv.Object(), nil)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Encode))
}
