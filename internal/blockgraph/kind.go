package blockgraph

import (
	"fmt"
	"strings"
)

// Kind is the closed set of block types the compiler understands.
type Kind string

const (
	KindStart          Kind = "start"
	KindEnd            Kind = "end"
	KindTextSearch     Kind = "text_search"
	KindSelectByID     Kind = "select_by_id"
	KindNeighborhood   Kind = "neighborhood"
	KindShortestPath   Kind = "shortest_path"
	KindOntologyFilter Kind = "ontology_filter"
	KindNodeFilter     Kind = "node_filter"
	KindEdgeFilter     Kind = "edge_filter"
	KindAnd            Kind = "and"
	KindOr             Kind = "or"
	KindNot            Kind = "not"
	KindResultLimit    Kind = "result_limit"
)

var displayNames = map[Kind]string{
	KindStart:          "Start",
	KindEnd:            "End",
	KindTextSearch:     "Text Search",
	KindSelectByID:     "Select by ID",
	KindNeighborhood:   "Neighborhood",
	KindShortestPath:   "Shortest Path",
	KindOntologyFilter: "Ontology Filter",
	KindNodeFilter:     "Node Filter",
	KindEdgeFilter:     "Edge Filter",
	KindAnd:            "AND",
	KindOr:             "OR",
	KindNot:            "NOT",
	KindResultLimit:    "Result Limit",
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindStart, KindEnd,
		KindTextSearch, KindSelectByID, KindNeighborhood, KindShortestPath,
		KindOntologyFilter, KindNodeFilter, KindEdgeFilter,
		KindAnd, KindOr, KindNot,
		KindResultLimit,
	}
}

// ParseKind validates a kind tag read from an external source.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := displayNames[k]; !ok {
		names := make([]string, 0, len(displayNames))
		for _, known := range Kinds() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("unknown block kind %q; expected one of %s", s, strings.Join(names, ", "))
	}
	return k, nil
}

// IsFlowMarker reports whether blocks of this kind only delimit the pipeline.
func (k Kind) IsFlowMarker() bool {
	return k == KindStart || k == KindEnd
}

// DisplayName is the human-facing name of the kind.
func (k Kind) DisplayName() string {
	if name, ok := displayNames[k]; ok {
		return name
	}
	return string(k)
}

// Direction of a neighborhood expansion relative to the input binding.
type Direction string

const (
	DirectionOutgoing Direction = "out"
	DirectionIncoming Direction = "in"
	DirectionBoth     Direction = "both"
)

// TargetMode selects how a shortest-path block resolves its target.
type TargetMode string

const (
	TargetByID   TargetMode = "id"
	TargetByText TargetMode = "text"
)
