package domain

const (
	DefaultColumn    = "RecipeFlow"
	DefaultDelimiter = " -> "

	DropOffLabel     = "Dropped Off"
	DropOffColor     = "#444444"
	DropOffLinkColor = "rgba(70, 70, 70, 0.3)"
)

// Chain is the ordered list of step labels one user went through.
type Chain []string

type Node struct {
	Index     int    `json:"index" yaml:"index"`
	Label     string `json:"label" yaml:"label"`
	Color     string `json:"color" yaml:"color"`
	LinkColor string `json:"link_color" yaml:"link_color"`
	DropOff   bool   `json:"drop_off,omitempty" yaml:"drop_off,omitempty"`
}

type Edge struct {
	Source      int    `json:"source" yaml:"source"`
	Target      int    `json:"target" yaml:"target"`
	SourceLabel string `json:"source_label" yaml:"source_label"`
	TargetLabel string `json:"target_label" yaml:"target_label"`
	Frequency   int    `json:"frequency" yaml:"frequency"`
	Color       string `json:"color" yaml:"color"`
}

// Graph is the node list (in index order) plus the deduplicated edge list.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

func NewGraph() *Graph {
	return &Graph{
		Nodes: []Node{},
		Edges: []Edge{},
	}
}

// NodeByLabel returns the first node carrying label. The drop-off node is
// always last, so a real step that shares its label is found first.
func (g *Graph) NodeByLabel(label string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Label == label {
			return n, true
		}
	}
	return Node{}, false
}

// EdgeBetween finds an edge by endpoint labels. When a real step is named
// DropOffLabel the lookup cannot tell it from the drop-off node; use
// EdgeByIndex for that case.
func (g *Graph) EdgeBetween(source, target string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.SourceLabel == source && e.TargetLabel == target {
			return e, true
		}
	}
	return Edge{}, false
}

// EdgeByIndex finds an edge by endpoint node indices.
func (g *Graph) EdgeByIndex(source, target int) (Edge, bool) {
	for _, e := range g.Edges {
		if e.Source == source && e.Target == target {
			return e, true
		}
	}
	return Edge{}, false
}

// OutFrequency sums the frequency of every edge leaving label. Like
// EdgeBetween it merges a real step named DropOffLabel with the drop-off node,
// though the drop-off node never has outgoing edges.
func (g *Graph) OutFrequency(label string) int {
	total := 0
	for _, e := range g.Edges {
		if e.SourceLabel == label {
			total += e.Frequency
		}
	}
	return total
}

// TotalFrequency sums the frequency of every edge in the graph.
func (g *Graph) TotalFrequency() int {
	total := 0
	for _, e := range g.Edges {
		total += e.Frequency
	}
	return total
}
