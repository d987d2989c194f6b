package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morgan-labs/codegenius/internal/ccg"
)

// sampleGraph builds a small graph with a directory, two files, and entities.
func sampleGraph(t *testing.T) *ccg.Graph {
	t.Helper()
	g := ccg.NewGraph()
	require.True(t, g.AddNode(ccg.Node{Key: "src", Label: "src", Type: ccg.NodeDirectory}))
	require.True(t, g.AddNode(ccg.Node{Key: "src/a.go", Label: "a.go", Type: ccg.NodeFile}))
	require.True(t, g.AddNode(ccg.Node{Key: "src/a.go::Foo", Label: "Foo", Type: ccg.NodeType("function")}))
	require.True(t, g.AddNode(ccg.Node{Key: "src/b.go", Label: "b.go", Type: ccg.NodeFile}))
	require.True(t, g.AddNode(ccg.Node{Key: "src/b.go::Bar", Label: "Bar", Type: ccg.NodeType("struct")}))
	g.AddEdge(ccg.Edge{Source: "src", Target: "src/a.go", Relation: ccg.RelationContains})
	g.AddEdge(ccg.Edge{Source: "src/a.go", Target: "src/a.go::Foo", Relation: ccg.RelationContains})
	g.AddEdge(ccg.Edge{Source: "src", Target: "src/b.go", Relation: ccg.RelationContains})
	g.AddEdge(ccg.Edge{Source: "src/b.go", Target: "src/b.go::Bar", Relation: ccg.RelationContains})
	g.AddEdge(ccg.Edge{Source: "src/a.go::Foo", Target: "src/b.go::Bar", Relation: ccg.RelationReferences})
	return g
}

func TestRenderer_Render(t *testing.T) {
	g := sampleGraph(t)
	out, err := NewRenderer().Render(g)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))

	// Node IDs are allocated in emission order.
	assert.Contains(t, out, `N0[["src"]]`)
	assert.Contains(t, out, `N1["a.go"]`)
	assert.Contains(t, out, `N2("Foo (function)")`)
	assert.Contains(t, out, `N3["b.go"]`)
	assert.Contains(t, out, `N4{{"Bar (struct)"}}`)

	assert.Contains(t, out, "N0 -->|contains| N1")
	assert.Contains(t, out, "N1 -->|contains| N2")
	assert.Contains(t, out, "N2 -->|references| N4")
}

func TestRenderer_Deterministic(t *testing.T) {
	g := sampleGraph(t)
	r := NewRenderer()

	first, err := r.Render(g)
	require.NoError(t, err)
	second, err := r.Render(g)
	require.NoError(t, err)

	assert.Equal(t, first, second, "renders of the same graph must be byte-identical")
}

func TestRenderer_AgentShapes(t *testing.T) {
	g := ccg.NewGraph()
	g.AddNode(ccg.Node{Key: "t.jac", Label: "t.jac", Type: ccg.NodeFile})
	g.AddNode(ccg.Node{Key: "t.jac::W", Label: "W", Type: ccg.NodeType("walker")})
	g.AddEdge(ccg.Edge{Source: "t.jac", Target: "t.jac::W", Relation: ccg.RelationContains})

	out, err := NewRenderer().Render(g)
	require.NoError(t, err)
	assert.Contains(t, out, `N1{"W (walker)"}`, "agent constructs render as rhombi")
}

func TestRenderer_LabelEscaping(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`say"hi"`, `say#quot;hi#quot;`},
		{"a[b]{c}", "a(b)(c)"},
		{"x|y", "x/y"},
		{"tick`", "tick'"},
		{"tab\there", "tab here"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLabel(tc.in), "escaping %q", tc.in)
	}
}

func TestRenderer_EmptyLabelPlaceholder(t *testing.T) {
	g := ccg.NewGraph()
	g.AddNode(ccg.Node{Key: "f.go", Label: "f.go", Type: ccg.NodeFile})
	g.AddNode(ccg.Node{Key: "f.go::x", Label: "\x01", Type: ccg.NodeType("function")})

	out, err := NewRenderer().Render(g)
	require.NoError(t, err)
	assert.Contains(t, out, `"unnamed (function)"`)
}

func TestRenderer_MaxNodes(t *testing.T) {
	g := sampleGraph(t)

	out, err := NewRenderer(WithMaxNodes(3)).Render(g)
	require.NoError(t, err)

	// Every node has degree 2, so insertion order breaks the tie: src, a.go,
	// and Foo win. b.go and Bar are cut, along with the edges touching them.
	assert.Contains(t, out, `"src"`)
	assert.Contains(t, out, `"a.go"`)
	assert.Contains(t, out, `"Foo (function)"`)
	assert.NotContains(t, out, "b.go")
	assert.NotContains(t, out, "Bar")
	assert.NotContains(t, out, "-->|references|", "edges to cut nodes are dropped")
}

func TestRenderer_MaxNodesPullsAncestors(t *testing.T) {
	g := ccg.NewGraph()
	g.AddNode(ccg.Node{Key: "src", Label: "src", Type: ccg.NodeDirectory})
	g.AddNode(ccg.Node{Key: "src/a.go", Label: "a.go", Type: ccg.NodeFile})
	g.AddNode(ccg.Node{Key: "src/a.go::Hub", Label: "Hub", Type: ccg.NodeType("function")})
	g.AddNode(ccg.Node{Key: "src/b.go", Label: "b.go", Type: ccg.NodeFile})
	g.AddNode(ccg.Node{Key: "src/b.go::Spoke1", Label: "Spoke1", Type: ccg.NodeType("function")})
	g.AddNode(ccg.Node{Key: "src/b.go::Spoke2", Label: "Spoke2", Type: ccg.NodeType("function")})
	g.AddEdge(ccg.Edge{Source: "src", Target: "src/a.go", Relation: ccg.RelationContains})
	g.AddEdge(ccg.Edge{Source: "src/a.go", Target: "src/a.go::Hub", Relation: ccg.RelationContains})
	g.AddEdge(ccg.Edge{Source: "src", Target: "src/b.go", Relation: ccg.RelationContains})
	g.AddEdge(ccg.Edge{Source: "src/b.go", Target: "src/b.go::Spoke1", Relation: ccg.RelationContains})
	g.AddEdge(ccg.Edge{Source: "src/b.go", Target: "src/b.go::Spoke2", Relation: ccg.RelationContains})
	g.AddEdge(ccg.Edge{Source: "src/b.go::Spoke1", Target: "src/a.go::Hub", Relation: ccg.RelationReferences})
	g.AddEdge(ccg.Edge{Source: "src/b.go::Spoke2", Target: "src/a.go::Hub", Relation: ccg.RelationReferences})

	out, err := NewRenderer(WithMaxNodes(1)).Render(g)
	require.NoError(t, err)

	// Hub wins on degree (ties broken by insertion order); its file and
	// directory come along so the containment chain never dangles.
	assert.Contains(t, out, `"Hub (function)"`)
	assert.Contains(t, out, `"a.go"`)
	assert.Contains(t, out, `"src"`)
	assert.NotContains(t, out, "Spoke1")
	assert.NotContains(t, out, "b.go")
}

func TestRenderer_EmptyGraph(t *testing.T) {
	out, err := NewRenderer().Render(ccg.NewGraph())
	require.NoError(t, err)
	assert.Equal(t, "graph TD\n", out)
}
