package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexed(records ...Record) ([]Record, *SignatureIndex) {
	for i := range records {
		records[i].Identifier = records[i].CategoryID.String()
		records[i].derive()
	}
	return records, NewSignatureIndex(records)
}

func TestSignatureIndex_Lookup(t *testing.T) {
	_, ix := indexed(
		rec(0, "1", "A"),
		rec(1, "2", "A", "B"),
		rec(2, "3"),
	)

	r, ok := ix.Lookup("AB")
	require.True(t, ok)
	assert.Equal(t, "2", r.Identifier)

	_, ok = ix.Lookup("")
	assert.False(t, ok, "empty signatures are not indexed")
	assert.Equal(t, 2, ix.Len())
	assert.Empty(t, ix.Collisions())
}

func TestSignatureIndex_CollisionsKeepFirst(t *testing.T) {
	_, ix := indexed(
		rec(0, "1", "XY"),
		rec(1, "2", "X", "Y"),
		rec(2, "3", "XY"),
	)

	r, ok := ix.Lookup("XY")
	require.True(t, ok)
	assert.Equal(t, "1", r.Identifier)

	require.Len(t, ix.Collisions(), 2)
	for _, a := range ix.Collisions() {
		assert.Equal(t, AnomalySignatureCollision, a.Kind)
		assert.Equal(t, 0, a.FirstPosition)
	}
}

func TestResolveParent(t *testing.T) {
	records, ix := indexed(
		rec(0, "1", "A"),
		rec(1, "2", "A", "B", "C"),
		rec(2, "3", "Q", "R"),
		rec(3, "4", "A", "B", "C", "D", "E"),
	)

	t.Run("depth one has no parent", func(t *testing.T) {
		id, misses := ix.ResolveParent(&records[0])
		assert.Empty(t, id)
		assert.Empty(t, misses)
	})

	t.Run("gap is skipped", func(t *testing.T) {
		id, misses := ix.ResolveParent(&records[1])
		assert.Equal(t, "1", id)
		require.Len(t, misses, 1)
		assert.Equal(t, "AB", misses[0].Signature)
		assert.Equal(t, "2", misses[0].Identifier)
	})

	t.Run("no ancestor at all", func(t *testing.T) {
		id, misses := ix.ResolveParent(&records[2])
		assert.Empty(t, id)
		require.Len(t, misses, 1)
		assert.Equal(t, "Q", misses[0].Signature)
		assert.Equal(t, "QR", misses[0].Path)
	})

	t.Run("nearest ancestor wins", func(t *testing.T) {
		id, misses := ix.ResolveParent(&records[3])
		assert.Equal(t, "2", id)
		require.Len(t, misses, 1)
		assert.Equal(t, "ABCD", misses[0].Signature)
	})
}

func TestAnomalyString(t *testing.T) {
	missing := Anomaly{Kind: AnomalyMissingAncestor, Signature: "0102", Path: "010203"}
	assert.Equal(t, `concept path "010203" suggests that "0102" should exist, but it doesn't`, missing.String())

	collision := Anomaly{Kind: AnomalySignatureCollision, Signature: "XY", Position: 4, FirstPosition: 1}
	assert.Equal(t, `signature "XY" of row 4 already belongs to row 1`, collision.String())
}
