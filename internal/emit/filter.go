package emit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/specialistvlad/querygrid/internal/cypher"
	"github.com/specialistvlad/querygrid/internal/diag"
)

func errNoConditions(label string) error {
	return diag.Validationf(label, "at least one condition is required")
}

// where renders a filter fragment that keeps the binding unchanged.
func where(in Input, conds []string) Output {
	return Output{
		Fragment: with(in.Scope, in.Binding) + "\nWHERE " + strings.Join(conds, " AND "),
		Binding:  in.Binding,
	}
}

func ontologyFilter(label string, p blockgraph.OntologyFilter, in Input) (Output, error) {
	if in.Binding == "" {
		return Output{}, errFirstBlock(label)
	}
	cond := cypher.AnyOf(cypher.Prop(in.Binding, "ontology_type"), p.Types)
	if cond == "" {
		return Output{}, errNoConditions(label)
	}
	return where(in, []string{cond}), nil
}

func nodeFilter(label string, p blockgraph.NodeFilter, in Input) (Output, error) {
	if in.Binding == "" {
		return Output{}, errFirstBlock(label)
	}
	var conds []string
	if cond := cypher.AnyOf(cypher.Prop(in.Binding, "label"), p.Labels); cond != "" {
		conds = append(conds, cond)
	}
	if math.IsInf(p.MinConfidence, 0) || math.IsNaN(p.MinConfidence) {
		return Output{}, diag.Validationf(label, "min confidence must be a finite number")
	}
	if p.MinConfidence > 0 {
		conds = append(conds, cypher.Prop(in.Binding, "confidence")+" >= "+strconv.FormatFloat(p.MinConfidence, 'f', -1, 64))
	}
	if len(conds) == 0 {
		return Output{}, errNoConditions(label)
	}
	return where(in, conds), nil
}

// edgeFilter only documents the requested relationship types; relationship
// filtering on the current binding is not implemented.
func edgeFilter(label string, p blockgraph.EdgeFilter, in Input) (Output, error) {
	if in.Binding == "" {
		return Output{}, errFirstBlock(label)
	}
	types := strings.TrimPrefix(cypher.RelTypes(p.RelationshipTypes), ":")
	if types == "" {
		return Output{}, errNoConditions(label)
	}
	return Output{
		Fragment: cypher.Comment(fmt.Sprintf("Edge filter [%s] on %s is not supported yet; relationships pass through unfiltered", types, in.Binding)),
		Binding:  in.Binding,
	}, nil
}
