package emit

import (
	"math"
	"testing"

	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/specialistvlad/querygrid/internal/diag"
	"github.com/specialistvlad/querygrid/internal/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(p blockgraph.Params) blockgraph.Block {
	return blockgraph.Block{ID: "b", Params: p}
}

func first() Input {
	return Input{First: true, Vars: &naming.Allocator{}}
}

func after(binding string) Input {
	return Input{Binding: binding, Scope: []string{binding}, Vars: &naming.Allocator{}}
}

func TestTextSearch(t *testing.T) {
	t.Run("with explicit limit", func(t *testing.T) {
		out, err := Emit(block(blockgraph.TextSearch{Query: "Payment", Limit: 5}), first())
		require.NoError(t, err)
		assert.Equal(t, "MATCH (n1)\nWHERE toLower(n1.label) CONTAINS 'payment'\nWITH n1 LIMIT 5", out.Fragment)
		assert.Equal(t, "n1", out.Binding)
		assert.Empty(t, out.PathBinding)
	})

	t.Run("defaults the cap to one", func(t *testing.T) {
		out, err := Emit(block(blockgraph.TextSearch{Query: "x"}), first())
		require.NoError(t, err)
		assert.Contains(t, out.Fragment, "WITH n1 LIMIT 1")
	})

	t.Run("keeps earlier bindings in scope", func(t *testing.T) {
		in := Input{Binding: "n1", Scope: []string{"n", "n1", "p1"}, Vars: &naming.Allocator{}}
		out, err := Emit(block(blockgraph.TextSearch{Query: "x", Limit: 2}), in)
		require.NoError(t, err)
		assert.Contains(t, out.Fragment, "WITH n, n1, p1 LIMIT 2")
	})

	t.Run("escapes the query", func(t *testing.T) {
		out, err := Emit(block(blockgraph.TextSearch{Query: "O'Brien"}), first())
		require.NoError(t, err)
		assert.Contains(t, out.Fragment, `CONTAINS 'o\'brien'`)
	})

	t.Run("empty query fails", func(t *testing.T) {
		b := blockgraph.Block{ID: "b", Label: "Find", Params: blockgraph.TextSearch{Query: "  "}}
		_, err := Emit(b, first())
		require.Error(t, err)
		assert.Equal(t, "Find: query is required", err.Error())
		assert.Equal(t, diag.Validation, diag.ClassOf(err))
	})
}

func TestSelectByID(t *testing.T) {
	t.Run("first position uses the canonical binding", func(t *testing.T) {
		out, err := Emit(block(blockgraph.SelectByID{ID: "svc-42"}), first())
		require.NoError(t, err)
		assert.Equal(t, "MATCH (n {id: 'svc-42'})", out.Fragment)
		assert.Equal(t, naming.Canonical, out.Binding)
	})

	t.Run("later position mints a fresh binding", func(t *testing.T) {
		out, err := Emit(block(blockgraph.SelectByID{ID: "svc-42"}), after("n"))
		require.NoError(t, err)
		assert.Equal(t, "MATCH (n1 {id: 'svc-42'})", out.Fragment)
		assert.Equal(t, "n1", out.Binding)
	})

	t.Run("empty identifier fails", func(t *testing.T) {
		_, err := Emit(block(blockgraph.SelectByID{}), first())
		assert.EqualError(t, err, "Select by ID: identifier is required")
	})
}

func TestNeighborhood(t *testing.T) {
	t.Run("outgoing with explicit types", func(t *testing.T) {
		p := blockgraph.Neighborhood{Direction: blockgraph.DirectionOutgoing, Depth: 3, RelationshipTypes: []string{"CALLS", "USES"}}
		out, err := Emit(block(p), after("n"))
		require.NoError(t, err)
		assert.Equal(t, "MATCH p1 = (n)-[:CALLS|USES*1..3]->(n1)", out.Fragment)
		assert.Equal(t, "n1", out.Binding)
		assert.Equal(t, "p1", out.PathBinding)
	})

	t.Run("incoming without types", func(t *testing.T) {
		p := blockgraph.Neighborhood{Direction: blockgraph.DirectionIncoming, Depth: 1}
		out, err := Emit(block(p), after("n"))
		require.NoError(t, err)
		assert.Equal(t, "MATCH p1 = (n)<-[*1..1]-(n1)", out.Fragment)
	})

	t.Run("blank direction means both", func(t *testing.T) {
		out, err := Emit(block(blockgraph.Neighborhood{Depth: 5}), after("n"))
		require.NoError(t, err)
		assert.Equal(t, "MATCH p1 = (n)-[*1..5]-(n1)", out.Fragment)
	})

	t.Run("explicit types take precedence over statuses", func(t *testing.T) {
		p := blockgraph.Neighborhood{Depth: 2, RelationshipTypes: []string{"CALLS"}, IncludeStatuses: []string{"verified"}}
		out, err := Emit(block(p), after("n"))
		require.NoError(t, err)
		assert.Contains(t, out.Fragment, "[:CALLS*1..2]")
	})

	t.Run("first block fails", func(t *testing.T) {
		_, err := Emit(block(blockgraph.Neighborhood{Depth: 2}), first())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be the first block")
	})

	t.Run("statuses without types is a capability error", func(t *testing.T) {
		for _, p := range []blockgraph.Neighborhood{
			{Depth: 2, IncludeStatuses: []string{"verified"}},
			{Depth: 2, ExcludeStatuses: []string{"refuted"}},
		} {
			_, err := Emit(block(p), after("n"))
			require.Error(t, err)
			assert.Equal(t, diag.Capability, diag.ClassOf(err))
			assert.Contains(t, err.Error(), TraverseAPI)
		}
	})

	t.Run("depth out of range", func(t *testing.T) {
		for _, depth := range []int{0, 6, -1} {
			_, err := Emit(block(blockgraph.Neighborhood{Depth: depth}), after("n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "depth must be between 1 and 5")
		}
	})

	t.Run("unknown direction", func(t *testing.T) {
		_, err := Emit(block(blockgraph.Neighborhood{Depth: 1, Direction: "sideways"}), after("n"))
		assert.ErrorContains(t, err, `direction "sideways"`)
	})
}

func TestShortestPath(t *testing.T) {
	t.Run("target by id", func(t *testing.T) {
		p := blockgraph.ShortestPath{Mode: blockgraph.TargetByID, TargetID: "db-1", MaxHops: 6}
		out, err := Emit(block(p), after("n1"))
		require.NoError(t, err)
		assert.Equal(t, "MATCH (t1) WHERE t1.id = 'db-1'\nMATCH p1 = shortestPath((n1)-[*..6]-(t1))", out.Fragment)
		assert.Equal(t, "n1", out.Binding)
		assert.Equal(t, "p1", out.PathBinding)
	})

	t.Run("target by text", func(t *testing.T) {
		p := blockgraph.ShortestPath{Mode: blockgraph.TargetByText, TargetQuery: "Ledger", MaxHops: 3}
		out, err := Emit(block(p), after("n1"))
		require.NoError(t, err)
		assert.Contains(t, out.Fragment, "MATCH (t1) WHERE toLower(t1.label) CONTAINS 'ledger'")
	})

	t.Run("required field follows the mode", func(t *testing.T) {
		_, err := Emit(block(blockgraph.ShortestPath{Mode: blockgraph.TargetByID, TargetQuery: "x", MaxHops: 3}), after("n1"))
		assert.ErrorContains(t, err, "target identifier is required")

		_, err = Emit(block(blockgraph.ShortestPath{Mode: blockgraph.TargetByText, TargetID: "x", MaxHops: 3}), after("n1"))
		assert.ErrorContains(t, err, "target query is required")
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := Emit(block(blockgraph.ShortestPath{Mode: "fuzzy", TargetID: "x", MaxHops: 3}), after("n1"))
		assert.ErrorContains(t, err, `mode "fuzzy"`)

		_, err = Emit(block(blockgraph.ShortestPath{TargetID: "x", MaxHops: 0}), after("n1"))
		assert.ErrorContains(t, err, "max hops must be between 1 and 15")

		_, err = Emit(block(blockgraph.ShortestPath{TargetID: "x", MaxHops: 3}), first())
		assert.ErrorContains(t, err, "cannot be the first block")
	})
}

func TestOntologyFilter(t *testing.T) {
	t.Run("regex term", func(t *testing.T) {
		out, err := Emit(block(blockgraph.OntologyFilter{Types: []string{"Foo.*"}}), after("n1"))
		require.NoError(t, err)
		assert.Equal(t, "WITH n1\nWHERE n1.ontology_type =~ 'Foo.*'", out.Fragment)
		assert.Equal(t, "n1", out.Binding)
	})

	t.Run("plain term", func(t *testing.T) {
		out, err := Emit(block(blockgraph.OntologyFilter{Types: []string{"Foo"}}), after("n1"))
		require.NoError(t, err)
		assert.Equal(t, "WITH n1\nWHERE n1.ontology_type = 'Foo'", out.Fragment)
	})

	t.Run("several terms are OR-combined", func(t *testing.T) {
		out, err := Emit(block(blockgraph.OntologyFilter{Types: []string{"Foo", "Bar.*"}}), after("n1"))
		require.NoError(t, err)
		assert.Contains(t, out.Fragment, "WHERE (n1.ontology_type = 'Foo' OR n1.ontology_type =~ 'Bar.*')")
	})

	t.Run("no usable term fails", func(t *testing.T) {
		_, err := Emit(block(blockgraph.OntologyFilter{Types: []string{""}}), after("n1"))
		assert.EqualError(t, err, "Ontology Filter: at least one condition is required")
	})
}

func TestNodeFilter(t *testing.T) {
	t.Run("labels and confidence are AND-ed", func(t *testing.T) {
		p := blockgraph.NodeFilter{Labels: []string{"api", "web.*"}, MinConfidence: 0.75}
		out, err := Emit(block(p), after("n2"))
		require.NoError(t, err)
		assert.Equal(t, "WITH n2\nWHERE (n2.label = 'api' OR n2.label =~ 'web.*') AND n2.confidence >= 0.75", out.Fragment)
	})

	t.Run("confidence only", func(t *testing.T) {
		out, err := Emit(block(blockgraph.NodeFilter{MinConfidence: 0.5}), after("n2"))
		require.NoError(t, err)
		assert.Equal(t, "WITH n2\nWHERE n2.confidence >= 0.5", out.Fragment)
	})

	t.Run("nothing to filter on fails", func(t *testing.T) {
		_, err := Emit(block(blockgraph.NodeFilter{}), after("n2"))
		assert.ErrorContains(t, err, "at least one condition is required")
	})

	t.Run("non-finite confidence fails", func(t *testing.T) {
		for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
			_, err := Emit(block(blockgraph.NodeFilter{Labels: []string{"db"}, MinConfidence: v}), after("n2"))
			require.Error(t, err, "min confidence %v", v)
			assert.Equal(t, diag.Validation, diag.ClassOf(err))
			assert.Contains(t, err.Error(), "min confidence must be a finite number")
		}
	})
}

func TestEdgeFilter(t *testing.T) {
	out, err := Emit(block(blockgraph.EdgeFilter{RelationshipTypes: []string{"CALLS"}}), after("n1"))
	require.NoError(t, err)
	assert.Equal(t, "// Edge filter [CALLS] on n1 is not supported yet; relationships pass through unfiltered", out.Fragment)
	assert.Equal(t, "n1", out.Binding)

	_, err = Emit(block(blockgraph.EdgeFilter{}), after("n1"))
	assert.ErrorContains(t, err, "at least one condition is required")
}

func TestGates(t *testing.T) {
	tests := []struct {
		params blockgraph.Params
		want   string
	}{
		{blockgraph.AndGate{}, "// AND gate: set intersection is not supported yet; passing n1 through"},
		{blockgraph.OrGate{}, "// OR gate: set union is not supported yet; passing n1 through"},
		{blockgraph.NotGate{}, "// NOT gate: set negation is not supported yet; passing n1 through"},
	}
	for _, tt := range tests {
		t.Run(string(tt.params.Kind()), func(t *testing.T) {
			out, err := Emit(block(tt.params), after("n1"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Fragment)
			assert.Equal(t, "n1", out.Binding)
			assert.Empty(t, out.PathBinding)
		})
	}
}

func TestResultLimit(t *testing.T) {
	out, err := Emit(block(blockgraph.ResultLimit{Count: 10}), after("n1"))
	require.NoError(t, err)
	assert.Empty(t, out.Fragment)
	assert.Equal(t, "n1", out.Binding)
	assert.Equal(t, 10, out.Limit)

	for _, count := range []int{0, -3} {
		_, err := Emit(block(blockgraph.ResultLimit{Count: count}), after("n1"))
		assert.ErrorContains(t, err, "count must be at least 1")
	}
}

func TestEmit_UnknownParams(t *testing.T) {
	_, err := Emit(blockgraph.Block{ID: "x", Label: "Mystery"}, first())
	assert.ErrorContains(t, err, "Mystery: unsupported block type")
}
