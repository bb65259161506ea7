// Package chain linearises a block graph into the ordered list of blocks the
// compiler emits code for.
//
// The walk starts at the single Start block and repeatedly follows the first
// outgoing connection of the current block, in connection-list order. Start
// and End blocks are walked but left out of the chain. Fan-out beyond the
// first connection is not followed; branching would need one binding per
// branch merged at gate blocks, which the compiler does not model.
package chain

import (
	"context"

	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/specialistvlad/querygrid/internal/ctxlog"
	"github.com/specialistvlad/querygrid/internal/dag"
	"github.com/specialistvlad/querygrid/internal/diag"
)

// MissingEndWarning is reported when the graph has no End block.
const MissingEndWarning = "No End block found; the chain ends at the last connected block."

// Chain is the ordered, duplicate-free sequence of non-flow-marker blocks.
type Chain []blockgraph.Block

// Resolve walks g from its Start block. It returns the chain and any
// warnings, or a *diag.Error describing the first structural problem found.
func Resolve(ctx context.Context, g blockgraph.Graph) (Chain, []string, error) {
	logger := ctxlog.FromContext(ctx)

	starts := g.BlocksOfKind(blockgraph.KindStart)
	switch {
	case len(starts) == 0:
		return nil, nil, diag.Structuralf("No Start block found.")
	case len(starts) > 1:
		return nil, nil, diag.Structuralf("Multiple Start blocks found.")
	}

	var warnings []string
	if len(g.BlocksOfKind(blockgraph.KindEnd)) == 0 {
		warnings = append(warnings, MissingEndWarning)
	}

	byID := make(map[string]blockgraph.Block, len(g.Blocks))
	topology := dag.New()
	for _, b := range g.Blocks {
		byID[b.ID] = b
		topology.AddNode(b.ID)
	}
	for _, c := range g.Connections {
		if err := topology.AddEdge(c.Source, c.Target); err != nil {
			// A connection from a block that no longer exists can never be followed.
			logger.Debug("Ignoring connection from unknown block.", "source", c.Source, "target", c.Target)
		}
	}

	var out Chain
	visited := make(map[string]bool, len(g.Blocks))
	current := starts[0]
	for {
		if visited[current.ID] {
			return nil, nil, diag.Structuralf("Cycle detected at block %q.", current.ID)
		}
		visited[current.ID] = true

		if !current.Kind().IsFlowMarker() {
			out = append(out, current)
		}

		nextID, ok := topology.Next(current.ID)
		if !ok {
			break
		}
		if degree := topology.OutDegree(current.ID); degree > 1 {
			logger.Debug("Block has several outgoing connections; following the first.",
				"block_id", current.ID, "out_degree", degree, "next", nextID)
		}

		if !topology.Has(nextID) {
			return nil, nil, diag.Structuralf("Connection target %q does not exist.", nextID)
		}
		current = byID[nextID]
	}

	logger.Debug("Chain resolved.", "length", len(out), "warnings", len(warnings))
	return out, warnings, nil
}
