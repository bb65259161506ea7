// Package dag stores the connection topology of a block graph as ordered
// adjacency lists keyed by block id.
//
// Successor lists keep the order in which edges were added, so a walk that
// always takes the first successor is deterministic for a given connection
// list. Edges may point at ids that were never added as nodes; callers decide
// whether such a dangling edge is an error.
package dag
