package kv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironleaf-games/kvtext/pkg/kv"
)

func buildSampleTree() *kv.Value {
	root := kv.Object()
	root.Set("name", kv.String("value"))
	root.Set("count", kv.Number(3))
	root.Set("active", kv.Bool(true))
	root.Set("nothing", kv.Null())
	root.Set("list", kv.Array(kv.String("a"), kv.Number(2), kv.Bool(false)))
	root.Set("nested", kv.Object().Set("inner", kv.String("deep")))
	return root
}

func TestMarshalUnmarshalCBORRoundTrip(t *testing.T) {
	root := buildSampleTree()

	data, err := kv.MarshalCBOR(root)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	back, err := kv.UnmarshalCBOR(data)
	require.NoError(t, err)
	require.True(t, root.Equal(back))
}

func TestMarshalCBORIsDeterministic(t *testing.T) {
	root := buildSampleTree()

	first, err := kv.MarshalCBOR(root)
	require.NoError(t, err)
	second, err := kv.MarshalCBOR(root)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSnapshotHashMatchesForEqualTrees(t *testing.T) {
	a := buildSampleTree()
	b := buildSampleTree()

	hashA, err := kv.SnapshotHash(a)
	require.NoError(t, err)
	hashB, err := kv.SnapshotHash(b)
	require.NoError(t, err)
	require.Equal(t, hashA, hashB)
}

func TestSnapshotHashDiffersForDifferentTrees(t *testing.T) {
	a := kv.Object().Set("x", kv.Number(1))
	b := kv.Object().Set("x", kv.Number(2))

	hashA, err := kv.SnapshotHash(a)
	require.NoError(t, err)
	hashB, err := kv.SnapshotHash(b)
	require.NoError(t, err)
	require.NotEqual(t, hashA, hashB)
}

func TestMarshalCBORNullValue(t *testing.T) {
	data, err := kv.MarshalCBOR(kv.Null())
	require.NoError(t, err)

	back, err := kv.UnmarshalCBOR(data)
	require.NoError(t, err)
	require.True(t, back.IsNull())
}
