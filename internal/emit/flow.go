package emit

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/specialistvlad/querygrid/internal/cypher"
	"github.com/specialistvlad/querygrid/internal/diag"
)

var gateOps = map[blockgraph.Kind]string{
	blockgraph.KindAnd: "intersection",
	blockgraph.KindOr:  "union",
	blockgraph.KindNot: "negation",
}

// gate passes its binding through and leaves a note in the query. Set algebra
// between bindings is not implemented.
func gate(k blockgraph.Kind, in Input) (Output, error) {
	subject := in.Binding
	if subject == "" {
		subject = "nothing"
	}
	note := fmt.Sprintf("%s gate: set %s is not supported yet; passing %s through",
		strings.ToUpper(string(k)), gateOps[k], subject)
	return Output{Fragment: cypher.Comment(note), Binding: in.Binding}, nil
}

// resultLimit records a row cap for the end of the query. It emits no text.
func resultLimit(label string, p blockgraph.ResultLimit, in Input) (Output, error) {
	if p.Count < 1 {
		return Output{}, diag.Validationf(label, "count must be at least 1, got %d", p.Count)
	}
	return Output{Binding: in.Binding, Limit: p.Count}, nil
}
