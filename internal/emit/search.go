package emit

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/specialistvlad/querygrid/internal/cypher"
	"github.com/specialistvlad/querygrid/internal/diag"
	"github.com/specialistvlad/querygrid/internal/naming"
)

// defaultSearchCap bounds a text search that does not set its own limit.
const defaultSearchCap = 1

// textSearch matches a fresh entity by a case-insensitive substring of its
// label and narrows the matches before handing the binding on.
func textSearch(label string, p blockgraph.TextSearch, in Input) (Output, error) {
	if strings.TrimSpace(p.Query) == "" {
		return Output{}, diag.Validationf(label, "query is required")
	}
	limit := p.Limit
	if limit < 1 {
		limit = defaultSearchCap
	}

	v := in.Vars.Entity()
	lines := []string{
		fmt.Sprintf("MATCH (%s)", v),
		"WHERE " + cypher.ContainsFold(cypher.Prop(v, "label"), p.Query),
		fmt.Sprintf("%s LIMIT %d", with(in.Scope, v), limit),
	}
	return Output{Fragment: strings.Join(lines, "\n"), Binding: v}, nil
}

// selectByID matches the entity with an exact identifier. In first position it
// binds the canonical name instead of a counter-suffixed one.
func selectByID(label string, p blockgraph.SelectByID, in Input) (Output, error) {
	if strings.TrimSpace(p.ID) == "" {
		return Output{}, diag.Validationf(label, "identifier is required")
	}

	v := naming.Canonical
	if !in.First {
		v = in.Vars.Entity()
	}
	return Output{
		Fragment: fmt.Sprintf("MATCH (%s {id: %s})", v, cypher.Quote(p.ID)),
		Binding:  v,
	}, nil
}
