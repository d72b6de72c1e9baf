package aggregate

import (
	"fmt"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"
)

type Options struct {
	// TrackDropoffs adds a terminal "Dropped Off" node fed by every chain's last step.
	TrackDropoffs bool
	// Styler colours discovered nodes. Nil means RandomStyler.
	Styler Styler
}

type edgeKey struct {
	source, target int
}

// Aggregate turns chains into a graph. Nodes are indexed in first-seen order,
// transitions between consecutive labels are merged into one edge per
// (source, target) pair and counted.
func Aggregate(chains []domain.Chain, opts Options) (*domain.Graph, error) {
	styler := opts.Styler
	if styler == nil {
		styler = RandomStyler{}
	}

	g := domain.NewGraph()
	index := make(map[string]int)

	for row, chain := range chains {
		if len(chain) == 0 {
			return nil, &domain.ProcessingError{Op: "aggregate", Row: row, Err: domain.ErrEmptyChain}
		}
		for _, label := range chain {
			if _, ok := index[label]; ok {
				continue
			}
			color, link := styler.Colors(label)
			index[label] = len(g.Nodes)
			g.Nodes = append(g.Nodes, domain.Node{
				Index:     len(g.Nodes),
				Label:     label,
				Color:     color,
				LinkColor: link,
			})
		}
	}

	// The label can collide with a real step; the drop-off node is addressed by index.
	dropOff := -1
	if opts.TrackDropoffs {
		dropOff = len(g.Nodes)
		g.Nodes = append(g.Nodes, domain.Node{
			Index:     dropOff,
			Label:     domain.DropOffLabel,
			Color:     domain.DropOffColor,
			LinkColor: domain.DropOffLinkColor,
			DropOff:   true,
		})
	}

	edges := make(map[edgeKey]int)
	for row, chain := range chains {
		for i, label := range chain {
			source, ok := index[label]
			if !ok {
				return nil, &domain.ProcessingError{
					Op:  "aggregate",
					Row: row,
					Err: fmt.Errorf("source %q was never registered", label),
				}
			}

			target := dropOff
			if i < len(chain)-1 {
				target = index[chain[i+1]]
			}
			if target < 0 {
				// chain ended and drop-offs are not tracked
				continue
			}

			key := edgeKey{source: source, target: target}
			if at, seen := edges[key]; seen {
				g.Edges[at].Frequency++
				continue
			}
			edges[key] = len(g.Edges)
			g.Edges = append(g.Edges, domain.Edge{
				Source:      source,
				Target:      target,
				SourceLabel: label,
				TargetLabel: g.Nodes[target].Label,
				Frequency:   1,
				Color:       g.Nodes[source].LinkColor,
			})
		}
	}

	return g, nil
}
