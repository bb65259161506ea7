package blockgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("union")
	assert.ErrorContains(t, err, `unknown block kind "union"`)
	assert.ErrorContains(t, err, "expected one of start, end, text_search,")
}

func TestKind_IsFlowMarker(t *testing.T) {
	assert.True(t, KindStart.IsFlowMarker())
	assert.True(t, KindEnd.IsFlowMarker())
	assert.False(t, KindTextSearch.IsFlowMarker())
	assert.False(t, KindResultLimit.IsFlowMarker())
}

func TestNewParams_CoversEveryKind(t *testing.T) {
	for _, k := range Kinds() {
		target, ok := NewParams(k)
		require.True(t, ok, "kind %s", k)
		p, isParams := target.(interface{ Kind() Kind })
		require.True(t, isParams)
		assert.Equal(t, k, p.Kind())
	}

	_, ok := NewParams("bogus")
	assert.False(t, ok)
}

func TestBlock_DisplayLabel(t *testing.T) {
	t.Run("uses the author label", func(t *testing.T) {
		b := Block{ID: "b1", Label: "Find payments", Params: TextSearch{}}
		assert.Equal(t, "Find payments", b.DisplayLabel())
	})

	t.Run("falls back to the kind name", func(t *testing.T) {
		b := Block{ID: "b1", Label: "  ", Params: Neighborhood{}}
		assert.Equal(t, "Neighborhood", b.DisplayLabel())
	})

	t.Run("block without params has no kind", func(t *testing.T) {
		b := Block{ID: "b1"}
		assert.Equal(t, Kind(""), b.Kind())
	})
}

func TestGraph_Clone(t *testing.T) {
	g := Graph{
		Blocks: []Block{
			{ID: "s", Params: Start{}},
			{ID: "f", Params: OntologyFilter{Types: []string{"Service"}}},
			{ID: "n", Params: Neighborhood{RelationshipTypes: []string{"CALLS"}}},
		},
		Connections: []Connection{{Source: "s", Target: "f"}, {Source: "f", Target: "n"}},
	}

	snap := g.Clone()
	require.Equal(t, g, snap)

	// Edits to the original after the snapshot must not leak into it.
	g.Blocks[1].Params.(OntologyFilter).Types[0] = "Mutated"
	g.Blocks[2].Label = "renamed"
	g.Connections[0].Target = "n"

	assert.Equal(t, []string{"Service"}, snap.Blocks[1].Params.(OntologyFilter).Types)
	assert.Empty(t, snap.Blocks[2].Label)
	assert.Equal(t, "f", snap.Connections[0].Target)
}

func TestGraph_BlocksOfKind(t *testing.T) {
	g := Graph{Blocks: []Block{
		{ID: "a", Params: Start{}},
		{ID: "b", Params: End{}},
		{ID: "c", Params: Start{}},
	}}
	starts := g.BlocksOfKind(KindStart)
	require.Len(t, starts, 2)
	assert.Equal(t, "a", starts[0].ID)
	assert.Equal(t, "c", starts[1].ID)
	assert.Empty(t, g.BlocksOfKind(KindTextSearch))
}
