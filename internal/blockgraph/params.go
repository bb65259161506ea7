package blockgraph

import "slices"

// Params is the per-kind parameter payload of a block. The set of
// implementations is closed; each kind has exactly one variant.
type Params interface {
	Kind() Kind
	clone() Params
}

// Start marks the entry of the pipeline.
type Start struct{}

// End marks the exit of the pipeline.
type End struct{}

// TextSearch matches entities whose label contains Query, case-insensitively,
// and keeps at most Limit of them.
type TextSearch struct {
	Query string `qg:"query"`
	Limit int    `qg:"limit"`
}

// SelectByID matches the single entity with the given identifier.
type SelectByID struct {
	ID string `qg:"id"`
}

// Neighborhood expands the current entities along relationships.
type Neighborhood struct {
	Direction         Direction `qg:"direction"`
	Depth             int       `qg:"depth"`
	RelationshipTypes []string  `qg:"relationship_types"`
	IncludeStatuses   []string  `qg:"include_statuses"`
	ExcludeStatuses   []string  `qg:"exclude_statuses"`
}

// ShortestPath finds the shortest path from the current entities to a target.
type ShortestPath struct {
	Mode        TargetMode `qg:"mode"`
	TargetID    string     `qg:"target_id"`
	TargetQuery string     `qg:"target_query"`
	MaxHops     int        `qg:"max_hops"`
}

// OntologyFilter keeps entities whose ontology type matches one of Types.
type OntologyFilter struct {
	Types []string `qg:"types"`
}

// NodeFilter keeps entities whose label matches one of Labels and whose
// confidence is at least MinConfidence when that is positive.
type NodeFilter struct {
	Labels        []string `qg:"labels"`
	MinConfidence float64  `qg:"min_confidence"`
}

// EdgeFilter names relationship types to keep. Not functional yet.
type EdgeFilter struct {
	RelationshipTypes []string `qg:"relationship_types"`
}

// AndGate, OrGate and NotGate are placeholders for binding-level set algebra.
type (
	AndGate struct{}
	OrGate  struct{}
	NotGate struct{}
)

// ResultLimit caps the number of returned rows.
type ResultLimit struct {
	Count int `qg:"count"`
}

func (Start) Kind() Kind          { return KindStart }
func (End) Kind() Kind            { return KindEnd }
func (TextSearch) Kind() Kind     { return KindTextSearch }
func (SelectByID) Kind() Kind     { return KindSelectByID }
func (Neighborhood) Kind() Kind   { return KindNeighborhood }
func (ShortestPath) Kind() Kind   { return KindShortestPath }
func (OntologyFilter) Kind() Kind { return KindOntologyFilter }
func (NodeFilter) Kind() Kind     { return KindNodeFilter }
func (EdgeFilter) Kind() Kind     { return KindEdgeFilter }
func (AndGate) Kind() Kind        { return KindAnd }
func (OrGate) Kind() Kind         { return KindOr }
func (NotGate) Kind() Kind        { return KindNot }
func (ResultLimit) Kind() Kind    { return KindResultLimit }

func (p Start) clone() Params        { return p }
func (p End) clone() Params          { return p }
func (p TextSearch) clone() Params   { return p }
func (p SelectByID) clone() Params   { return p }
func (p ShortestPath) clone() Params { return p }
func (p AndGate) clone() Params      { return p }
func (p OrGate) clone() Params       { return p }
func (p NotGate) clone() Params      { return p }
func (p ResultLimit) clone() Params  { return p }

func (p Neighborhood) clone() Params {
	p.RelationshipTypes = slices.Clone(p.RelationshipTypes)
	p.IncludeStatuses = slices.Clone(p.IncludeStatuses)
	p.ExcludeStatuses = slices.Clone(p.ExcludeStatuses)
	return p
}

func (p OntologyFilter) clone() Params {
	p.Types = slices.Clone(p.Types)
	return p
}

func (p NodeFilter) clone() Params {
	p.Labels = slices.Clone(p.Labels)
	return p
}

func (p EdgeFilter) clone() Params {
	p.RelationshipTypes = slices.Clone(p.RelationshipTypes)
	return p
}

// NewParams returns a pointer to the zero parameter variant for a kind,
// suitable as a decode target.
func NewParams(k Kind) (any, bool) {
	switch k {
	case KindStart:
		return &Start{}, true
	case KindEnd:
		return &End{}, true
	case KindTextSearch:
		return &TextSearch{}, true
	case KindSelectByID:
		return &SelectByID{}, true
	case KindNeighborhood:
		return &Neighborhood{}, true
	case KindShortestPath:
		return &ShortestPath{}, true
	case KindOntologyFilter:
		return &OntologyFilter{}, true
	case KindNodeFilter:
		return &NodeFilter{}, true
	case KindEdgeFilter:
		return &EdgeFilter{}, true
	case KindAnd:
		return &AndGate{}, true
	case KindOr:
		return &OrGate{}, true
	case KindNot:
		return &NotGate{}, true
	case KindResultLimit:
		return &ResultLimit{}, true
	}
	return nil, false
}
