package emit

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/specialistvlad/querygrid/internal/cypher"
	"github.com/specialistvlad/querygrid/internal/diag"
)

const (
	minHops             = 1
	maxNeighborhoodHops = 5
	maxShortestPathHops = 15
)

// TraverseAPI is the endpoint that resolves epistemic statuses to relationship
// types at request time.
const TraverseAPI = "POST /api/graph/traverse"

func errFirstBlock(label string) error {
	return diag.Validationf(label, "cannot be the first block; connect a block that matches entities before it")
}

func arrowOf(d blockgraph.Direction) (cypher.Arrow, error) {
	switch d {
	case blockgraph.DirectionOutgoing:
		return cypher.Outgoing, nil
	case blockgraph.DirectionIncoming:
		return cypher.Incoming, nil
	case blockgraph.DirectionBoth, "":
		return cypher.Undirected, nil
	}
	return 0, fmt.Errorf("direction %q is not one of out, in, both", d)
}

// neighborhood expands the input binding along a variable-length path and
// binds both the reached entities and the path.
func neighborhood(label string, p blockgraph.Neighborhood, in Input) (Output, error) {
	if in.Binding == "" {
		return Output{}, errFirstBlock(label)
	}
	if p.Depth < minHops || p.Depth > maxNeighborhoodHops {
		return Output{}, diag.Validationf(label, "depth must be between %d and %d, got %d", minHops, maxNeighborhoodHops, p.Depth)
	}
	arrow, err := arrowOf(p.Direction)
	if err != nil {
		return Output{}, diag.Validationf(label, "%s", err)
	}

	types := cypher.RelTypes(p.RelationshipTypes)
	if types == "" && (len(p.IncludeStatuses) > 0 || len(p.ExcludeStatuses) > 0) {
		return Output{}, diag.Capabilityf(label,
			"epistemic status filters need relationship-type resolution, which is unavailable at compile time; call the graph traversal API (%s) instead", TraverseAPI)
	}

	v, path := in.Vars.Pair()
	body := fmt.Sprintf("%s*%d..%d", types, minHops, p.Depth)
	return Output{
		Fragment:    fmt.Sprintf("MATCH %s = %s", path, cypher.Rel(in.Binding, body, v, arrow)),
		Binding:     v,
		PathBinding: path,
	}, nil
}

// shortestPath resolves a target entity and binds the shortest path from the
// input binding to it. The input binding stays current.
func shortestPath(label string, p blockgraph.ShortestPath, in Input) (Output, error) {
	if in.Binding == "" {
		return Output{}, errFirstBlock(label)
	}

	var cond func(v string) string
	switch p.Mode {
	case blockgraph.TargetByID, "":
		if strings.TrimSpace(p.TargetID) == "" {
			return Output{}, diag.Validationf(label, "target identifier is required")
		}
		cond = func(v string) string { return cypher.Prop(v, "id") + " = " + cypher.Quote(p.TargetID) }
	case blockgraph.TargetByText:
		if strings.TrimSpace(p.TargetQuery) == "" {
			return Output{}, diag.Validationf(label, "target query is required")
		}
		cond = func(v string) string { return cypher.ContainsFold(cypher.Prop(v, "label"), p.TargetQuery) }
	default:
		return Output{}, diag.Validationf(label, "mode %q is not one of id, text", p.Mode)
	}
	if p.MaxHops < minHops || p.MaxHops > maxShortestPathHops {
		return Output{}, diag.Validationf(label, "max hops must be between %d and %d, got %d", minHops, maxShortestPathHops, p.MaxHops)
	}

	target, path := in.Vars.Target()
	lines := []string{
		fmt.Sprintf("MATCH (%s) WHERE %s", target, cond(target)),
		fmt.Sprintf("MATCH %s = shortestPath(%s)", path, cypher.Rel(in.Binding, fmt.Sprintf("*..%d", p.MaxHops), target, cypher.Undirected)),
	}
	return Output{
		Fragment:    strings.Join(lines, "\n"),
		Binding:     in.Binding,
		PathBinding: path,
	}, nil
}
