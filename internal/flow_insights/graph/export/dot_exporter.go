package export

import (
	"fmt"
	"strings"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"
)

func ToDOT(g *domain.Graph, title string) string {
	var b strings.Builder
	b.WriteString("digraph G {\n  rankdir=LR;\n  node [shape=box, style=\"rounded,filled\"];\n")
	if title != "" {
		b.WriteString(fmt.Sprintf(`  labelloc="t"; label="%s"; fontname="Helvetica";`, escape(title)))
		b.WriteString("\n")
	}

	for _, n := range g.Nodes {
		fill := n.Color
		if strings.HasPrefix(fill, "rgb") {
			fill = rgbToHex(fill)
		}
		style := fmt.Sprintf(`fillcolor="%s"`, fill)
		if n.DropOff {
			style = `shape=octagon, fillcolor="#444444", fontcolor="white"`
		}
		b.WriteString(fmt.Sprintf(`  n%d [label="%s", %s];`+"\n", n.Index, escape(n.Label), style))
	}

	max := 1
	for _, e := range g.Edges {
		if e.Frequency > max {
			max = e.Frequency
		}
	}
	for _, e := range g.Edges {
		width := 1 + 4*float64(e.Frequency)/float64(max)
		b.WriteString(fmt.Sprintf(`  n%d -> n%d [label="%d", penwidth=%.2f];`+"\n",
			e.Source, e.Target, e.Frequency, width))
	}

	b.WriteString("}\n")
	return b.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// rgbToHex converts "rgb(r, g, b)" into "#rrggbb"; graphviz has no rgb() syntax.
func rgbToHex(s string) string {
	var r, g, b int
	if _, err := fmt.Sscanf(s, "rgb(%d, %d, %d)", &r, &g, &b); err != nil {
		return "#eef6ff"
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
