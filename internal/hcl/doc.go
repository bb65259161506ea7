// Package hcl loads block graphs written as HCL, in native syntax (.hcl) or
// JSON syntax (.hcl.json), into the blockgraph model.
//
// A graph file declares blocks and the connections between them:
//
//	block "start" "start" {}
//
//	block "text_search" "find" {
//	  label = "Find payments"
//	  query = "payment"
//	  limit = 5
//	}
//
//	block "end" "end" {}
//
//	connection "start" "find" {}
//	connection "find" "end" {}
//
// The first label of a block is its kind, the second its id. Attributes are
// bound to the fields of the kind's parameter struct through their `qg` tags;
// the optional `label` attribute is the display label. Attributes are
// evaluated without variables or functions. Missing attributes keep their zero
// value.
//
// Encode writes a graph back in canonical native syntax.
package hcl
