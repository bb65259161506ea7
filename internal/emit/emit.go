// Package emit turns one block and the binding flowing into it into a Cypher
// fragment and the binding flowing out of it.
//
// Every block kind has its own emitter; Emit dispatches on the parameter
// variant. Emitters are pure apart from drawing names from the allocator.
package emit

import (
	"slices"
	"strings"

	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/specialistvlad/querygrid/internal/diag"
	"github.com/specialistvlad/querygrid/internal/naming"
)

// Input is what an emitter receives.
type Input struct {
	// Binding is the current binding, empty when nothing has been matched yet.
	Binding string
	// First is true for the first element of the chain.
	First bool
	// Scope lists every binding in scope before this block, in binding order.
	// Clauses that reset scope must carry all of them.
	Scope []string
	Vars  *naming.Allocator
}

// Output is what an emitter produces.
type Output struct {
	// Fragment is the emitted query text, possibly several lines. Empty when
	// the block contributes no text.
	Fragment string
	// Binding is the current binding after this block.
	Binding string
	// PathBinding is set by emitters that bind a path.
	PathBinding string
	// Limit is the row cap of a Result Limit block, zero otherwise.
	Limit int
}

// Emit generates the fragment for b.
func Emit(b blockgraph.Block, in Input) (Output, error) {
	label := b.DisplayLabel()
	switch p := b.Params.(type) {
	case blockgraph.TextSearch:
		return textSearch(label, p, in)
	case blockgraph.SelectByID:
		return selectByID(label, p, in)
	case blockgraph.Neighborhood:
		return neighborhood(label, p, in)
	case blockgraph.ShortestPath:
		return shortestPath(label, p, in)
	case blockgraph.OntologyFilter:
		return ontologyFilter(label, p, in)
	case blockgraph.NodeFilter:
		return nodeFilter(label, p, in)
	case blockgraph.EdgeFilter:
		return edgeFilter(label, p, in)
	case blockgraph.AndGate, blockgraph.OrGate, blockgraph.NotGate:
		return gate(b.Kind(), in)
	case blockgraph.ResultLimit:
		return resultLimit(label, p, in)
	case blockgraph.Start, blockgraph.End:
		return Output{Binding: in.Binding}, nil
	}
	return Output{}, diag.Validationf(label, "unsupported block type %T", b.Params)
}

// with renders a WITH clause that keeps scope plus any extra bindings.
func with(scope []string, extra ...string) string {
	vars := slices.Clone(scope)
	for _, v := range extra {
		if !slices.Contains(vars, v) {
			vars = append(vars, v)
		}
	}
	return "WITH " + strings.Join(vars, ", ")
}
