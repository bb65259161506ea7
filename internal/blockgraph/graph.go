package blockgraph

import "strings"

// Block is a typed unit of the visual pipeline.
type Block struct {
	ID     string
	Label  string
	Params Params
}

// Kind returns the kind implied by the block's parameter variant.
func (b Block) Kind() Kind {
	if b.Params == nil {
		return ""
	}
	return b.Params.Kind()
}

// DisplayLabel is the name used in diagnostics: the author's label when set,
// otherwise the kind's display name.
func (b Block) DisplayLabel() string {
	if label := strings.TrimSpace(b.Label); label != "" {
		return label
	}
	return b.Kind().DisplayName()
}

// Connection is a directed edge from Source to Target, both block ids.
type Connection struct {
	Source string
	Target string
}

// Graph is the full snapshot passed to one compilation call.
type Graph struct {
	Blocks      []Block
	Connections []Connection
}

// Clone returns a deep copy that shares no mutable state with g.
func (g Graph) Clone() Graph {
	out := Graph{}
	if g.Blocks != nil {
		out.Blocks = make([]Block, len(g.Blocks))
		for i, b := range g.Blocks {
			if b.Params != nil {
				b.Params = b.Params.clone()
			}
			out.Blocks[i] = b
		}
	}
	if g.Connections != nil {
		out.Connections = make([]Connection, len(g.Connections))
		copy(out.Connections, g.Connections)
	}
	return out
}

// BlocksOfKind returns the blocks of kind k in input order.
func (g Graph) BlocksOfKind(k Kind) []Block {
	var out []Block
	for _, b := range g.Blocks {
		if b.Kind() == k {
			out = append(out, b)
		}
	}
	return out
}
