package dag

import (
	"fmt"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{id: id}
}

// Has reports whether a node with the given ID was added.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// AddEdge records a directed edge from `fromID` to `toID`. The source must
// exist; the destination may be unknown, in which case the edge dangles.
// Self-referential and duplicate edges are kept as given.
func (g *Graph) AddEdge(fromID, toID string) error {
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	fromNode.successors = append(fromNode.successors, toID)
	return nil
}

// Next returns the first successor of the given node, if any.
func (g *Graph) Next(id string) (string, bool) {
	n, ok := g.nodes[id]
	if !ok || len(n.successors) == 0 {
		return "", false
	}
	return n.successors[0], true
}

// OutDegree returns the number of edges leaving the given node.
func (g *Graph) OutDegree(id string) int {
	n, ok := g.nodes[id]
	if !ok {
		return 0
	}
	return len(n.successors)
}
