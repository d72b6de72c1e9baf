package export

import "github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"

// Figure is a Plotly figure description: a list of traces and a layout.
type Figure struct {
	Data   []SankeyTrace  `json:"data,omitempty"`
	Layout map[string]any `json:"layout"`
}

type SankeyTrace struct {
	Type string     `json:"type"`
	Node SankeyNode `json:"node"`
	Link SankeyLink `json:"link"`
}

type SankeyNode struct {
	Pad       int            `json:"pad"`
	Thickness int            `json:"thickness"`
	Line      map[string]any `json:"line"`
	Label     []string       `json:"label"`
	Color     []string       `json:"color"`
}

type SankeyLink struct {
	Source []int    `json:"source"`
	Target []int    `json:"target"`
	Value  []int    `json:"value"`
	Color  []string `json:"color"`
}

type FigureOptions struct {
	Title    string
	Width    int
	Height   int
	FontSize int
}

func (o FigureOptions) withDefaults() FigureOptions {
	if o.Width == 0 {
		o.Width = 2000
	}
	if o.Height == 0 {
		o.Height = 1200
	}
	if o.FontSize == 0 {
		o.FontSize = 14
	}
	return o
}

func ToFigure(g *domain.Graph, opt FigureOptions) Figure {
	opt = opt.withDefaults()

	node := SankeyNode{
		Pad:       15,
		Thickness: 20,
		Line:      map[string]any{"color": "black", "width": 0.5},
		Label:     make([]string, 0, len(g.Nodes)),
		Color:     make([]string, 0, len(g.Nodes)),
	}
	for _, n := range g.Nodes {
		node.Label = append(node.Label, n.Label)
		node.Color = append(node.Color, n.Color)
	}

	link := SankeyLink{
		Source: make([]int, 0, len(g.Edges)),
		Target: make([]int, 0, len(g.Edges)),
		Value:  make([]int, 0, len(g.Edges)),
		Color:  make([]string, 0, len(g.Edges)),
	}
	for _, e := range g.Edges {
		link.Source = append(link.Source, e.Source)
		link.Target = append(link.Target, e.Target)
		link.Value = append(link.Value, e.Frequency)
		link.Color = append(link.Color, e.Color)
	}

	return Figure{
		Data: []SankeyTrace{{Type: "sankey", Node: node, Link: link}},
		Layout: map[string]any{
			"title":    map[string]any{"text": opt.Title},
			"autosize": false,
			"width":    opt.Width,
			"height":   opt.Height,
			"font":     map[string]any{"size": opt.FontSize},
		},
	}
}

// ErrorFigure is an empty plot that shows text in place of a diagram.
func ErrorFigure(text string) Figure {
	return Figure{
		Layout: map[string]any{
			"xaxis": map[string]any{"visible": false},
			"yaxis": map[string]any{"visible": false},
			"annotations": []map[string]any{
				{
					"text":      text,
					"xref":      "paper",
					"yref":      "paper",
					"showarrow": false,
					"font":      map[string]any{"size": 28},
				},
			},
		},
	}
}
