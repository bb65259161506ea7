package dag

// Graph is a collection of nodes and their ordered outgoing edges.
// It is not safe for concurrent mutation; build it once, then read it.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id string
	// successors holds edge targets in the order the edges were added.
	successors []string
}
