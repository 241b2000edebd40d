package kv3_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironleaf-games/kvtext/pkg/kv"
	"github.com/ironleaf-games/kvtext/pkg/kv3"
)

func TestDecodeFlatKeyTagValue(t *testing.T) {
	tree, err := kv3.Decode([]byte(`"key" "tag" "value"`), nil)
	require.NoError(t, err)

	pair := tree.Get("key")
	require.Equal(t, kv.KindArray, pair.Kind())
	require.Equal(t, "tag", pair.Elems()[0].Str())
	require.Equal(t, "value", pair.Elems()[1].Str())
}

func TestDecodeNestedObjectMember(t *testing.T) {
	tree, err := kv3.Decode([]byte(`"outer" { "inner" "tag" "val" }`), nil)
	require.NoError(t, err)

	inner := tree.Get("outer").Get("inner")
	require.Equal(t, "tag", inner.Elems()[0].Str())
	require.Equal(t, "val", inner.Elems()[1].Str())
}

func TestDecodeEmptyObjectMember(t *testing.T) {
	tree, err := kv3.Decode([]byte(`"key" {}`), nil)
	require.NoError(t, err)
	obj := tree.Get("key")
	require.Equal(t, kv.KindObject, obj.Kind())
	require.Equal(t, 0, obj.Len())
}

func TestDecodeEmptyArrayMember(t *testing.T) {
	tree, err := kv3.Decode([]byte(`"key" []`), nil)
	require.NoError(t, err)
	arr := tree.Get("key")
	require.Equal(t, kv.KindArray, arr.Kind())
	require.Equal(t, 0, arr.Len())
}

func TestDecodeArrayPlainElements(t *testing.T) {
	tree, err := kv3.Decode([]byte(`"arr" ["a", "b"]`), nil)
	require.NoError(t, err)
	arr := tree.Get("arr")
	require.Equal(t, 2, arr.Len())
	require.Equal(t, "a", arr.Elems()[0].Str())
	require.Equal(t, "b", arr.Elems()[1].Str())
}

func TestDecodeArrayTypedPairElementHasNoComma(t *testing.T) {
	tree, err := kv3.Decode([]byte(`"arr" ["tag" "val"]`), nil)
	require.NoError(t, err)
	arr := tree.Get("arr")
	require.Equal(t, 1, arr.Len())
	pair := arr.Elems()[0]
	require.Equal(t, kv.KindArray, pair.Kind())
	require.Equal(t, "tag", pair.Elems()[0].Str())
	require.Equal(t, "val", pair.Elems()[1].Str())
}

func TestDecodeArrayMixedPlainAndTypedElements(t *testing.T) {
	tree, err := kv3.Decode([]byte(`"arr" ["a", "tag" "val", "b"]`), nil)
	require.NoError(t, err)
	arr := tree.Get("arr")
	require.Equal(t, 3, arr.Len())
	require.Equal(t, "a", arr.Elems()[0].Str())
	require.Equal(t, kv.KindArray, arr.Elems()[1].Kind())
	require.Equal(t, "b", arr.Elems()[2].Str())
}

func TestDecodeBlockComment(t *testing.T) {
	tree, err := kv3.Decode([]byte(`"key"<!-- a comment -->"tag" "value"`), nil)
	require.NoError(t, err)
	pair := tree.Get("key")
	require.Equal(t, "value", pair.Elems()[1].Str())
}

func TestDecodeUnterminatedBlockComment(t *testing.T) {
	_, err := kv3.Decode([]byte(`"key" <!-- never closes`), nil)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Lexical))
}

func TestDecodeTopLevelMustBeginWithString(t *testing.T) {
	_, err := kv3.Decode([]byte(`{ "a" "b" "c" }`), nil)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Structural))
}

func TestDecodeRejectsBareUnquotedToken(t *testing.T) {
	_, err := kv3.Decode([]byte(`abc`), nil)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Lexical))
}

func TestDecodeMaxDepthExceeded(t *testing.T) {
	cfg := kv3.DefaultConfig()
	cfg.DecodeMaxDepth = 2

	input := `"a" { "b" { "c" { "d" "tag" "e" } } }`
	_, err := kv3.Decode([]byte(input), cfg)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Structural))
}

func TestEncodeRoundTrip(t *testing.T) {
	root := kv.Object()
	root.Set("a", kv.Array(kv.String("string"), kv.String("v")))
	inner := kv.Object()
	inner.Set("b", kv.Array(kv.String("int32"), kv.String("5")))
	root.Set("nested", inner)
	root.Set("list", kv.Array(
		kv.Array(kv.String("string"), kv.String("x")),
		kv.Array(kv.String("string"), kv.String("y")),
	))

	out, err := kv3.Encode(root, nil)
	require.NoError(t, err)

	back, err := kv3.Decode(out, nil)
	require.NoError(t, err)
	require.True(t, root.Equal(back))
}

func TestEncodeRejectsBareScalarMember(t *testing.T) {
	root := kv.Object()
	root.Set("x", kv.String("y"))

	_, err := kv3.Encode(root, nil)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Encode))
}

func TestEncodeRejectsNonObjectRoot(t *testing.T) {
	_, err := kv3.Encode(kv.Array(), nil)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Encode))
}

func TestEncodeRejectsNumberInsideTagPair(t *testing.T) {
	// KV3 has no bare numeric literal: even a typed scalar's payload must
	// be a string, with the tag carrying the intended type.
	root := kv.Object()
	root.Set("n", kv.Array(kv.String("int32"), kv.Number(5)))

	_, err := kv3.Encode(root, nil)
	require.Error(t, err)
	require.True(t, kv.IsKind(err, kv.Encode))
}
