package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"
)

func sampleGraph() *domain.Graph {
	return &domain.Graph{
		Nodes: []domain.Node{
			{Index: 0, Label: "Greeting", Color: "rgb(10, 20, 30)", LinkColor: "rgba(10, 20, 30, 0.3)"},
			{Index: 1, Label: `Say "hi"`, Color: "rgb(1, 2, 3)", LinkColor: "rgba(1, 2, 3, 0.3)"},
			{Index: 2, Label: domain.DropOffLabel, Color: domain.DropOffColor, LinkColor: domain.DropOffLinkColor, DropOff: true},
		},
		Edges: []domain.Edge{
			{Source: 0, Target: 1, SourceLabel: "Greeting", TargetLabel: `Say "hi"`, Frequency: 4, Color: "rgba(10, 20, 30, 0.3)"},
			{Source: 1, Target: 2, SourceLabel: `Say "hi"`, TargetLabel: domain.DropOffLabel, Frequency: 1, Color: "rgba(1, 2, 3, 0.3)"},
		},
	}
}

func TestToFigure(t *testing.T) {
	fig := ToFigure(sampleGraph(), FigureOptions{Title: "report.csv"})

	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]
	assert.Equal(t, "sankey", tr.Type)
	assert.Equal(t, 15, tr.Node.Pad)
	assert.Equal(t, 20, tr.Node.Thickness)
	assert.Equal(t, []string{"Greeting", `Say "hi"`, domain.DropOffLabel}, tr.Node.Label)
	assert.Equal(t, []int{0, 1}, tr.Link.Source)
	assert.Equal(t, []int{1, 2}, tr.Link.Target)
	assert.Equal(t, []int{4, 1}, tr.Link.Value)

	assert.Equal(t, 2000, fig.Layout["width"])
	assert.Equal(t, 1200, fig.Layout["height"])
	assert.Equal(t, map[string]any{"size": 14}, fig.Layout["font"])
	assert.Equal(t, map[string]any{"text": "report.csv"}, fig.Layout["title"])
}

func TestToFigure_EmptyGraphEncodesArrays(t *testing.T) {
	b, err := json.Marshal(ToFigure(domain.NewGraph(), FigureOptions{}))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"source":[]`)
	assert.Contains(t, string(b), `"label":[]`)
}

func TestErrorFigure(t *testing.T) {
	fig := ErrorFigure("Please upload a file to see something here")
	assert.Empty(t, fig.Data)

	b, err := json.Marshal(fig)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"data"`)
	assert.Contains(t, string(b), "Please upload a file to see something here")
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleGraph(), "Flows")

	assert.True(t, strings.HasPrefix(dot, "digraph G {"))
	assert.Contains(t, dot, `label="Flows"`)
	assert.Contains(t, dot, `n0 [label="Greeting", fillcolor="#0a141e"];`)
	assert.Contains(t, dot, `n1 [label="Say \"hi\""`)
	assert.Contains(t, dot, `n2 [label="Dropped Off", shape=octagon`)
	assert.Contains(t, dot, `n0 -> n1 [label="4", penwidth=5.00];`)
	assert.Contains(t, dot, `n1 -> n2 [label="1", penwidth=2.00];`)
}

func TestWriteJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	g := sampleGraph()

	jsonPath := filepath.Join(dir, "graph.json")
	require.NoError(t, WriteJSON(jsonPath, g))
	b, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON domain.Graph
	require.NoError(t, json.Unmarshal(b, &fromJSON))
	assert.Equal(t, *g, fromJSON)

	yamlPath := filepath.Join(dir, "graph.yaml")
	require.NoError(t, WriteYAML(yamlPath, g))
	b, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML domain.Graph
	require.NoError(t, yaml.Unmarshal(b, &fromYAML))
	assert.Equal(t, *g, fromYAML)
}

func TestWriteArtifacts_CreateRunDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs", "abc")
	g := sampleGraph()

	jsonPath := filepath.Join(dir, "analysis.json")
	require.NoError(t, WriteJSON(jsonPath, g))
	b, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(b), "}\n"))

	yamlPath := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, WriteYAML(yamlPath, g))
	b, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  - index: 0\n")
}

func TestDotTo_MissingBinary(t *testing.T) {
	err := DotTo("in.dot", "out.svg", "svg", "definitely-not-a-graphviz-binary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dot binary not found")
}
