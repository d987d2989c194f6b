package export

import (
	"fmt"
	"strings"

	"github.com/morgan-labs/codegenius/internal/ccg"
)

// Renderer converts a code context graph into Mermaid "graph TD" statements.
// Output is deterministic for a given graph: nodes are emitted in the
// graph's insertion order and edges in theirs, so generated reports stay
// diff-friendly.
type Renderer struct {
	maxNodes int
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithMaxNodes caps the diagram to the n most-connected nodes (plus their
// containment ancestors, so the tree never dangles). Zero means unlimited.
func WithMaxNodes(n int) RendererOption {
	return func(r *Renderer) { r.maxNodes = n }
}

// NewRenderer returns a Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render emits one define statement per node and one connect statement per
// edge between included nodes.
func (r *Renderer) Render(g *ccg.Graph) (string, error) {
	nodes := g.Nodes()
	edges := g.Edges()
	include := r.selectNodes(nodes, edges)

	// Stable alphanumeric IDs, allocated in emission order.
	ids := make(map[string]string, len(nodes))
	nextID := 0
	getID := func(key string) string {
		if id, ok := ids[key]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		ids[key] = id
		return id
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, n := range nodes {
		if !include[n.Key] {
			continue
		}
		opening, closing := shapeFor(n.Type)
		label := displayLabel(n)
		sb.WriteString(fmt.Sprintf("  %s%s\"%s\"%s\n", getID(n.Key), opening, label, closing))
	}

	for _, e := range edges {
		if !include[e.Source] || !include[e.Target] {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s -->|%s| %s\n", getID(e.Source), e.Relation, getID(e.Target)))
	}

	return sb.String(), nil
}

// selectNodes returns the set of node keys to draw. With no cap every node
// is included; otherwise the maxNodes highest-degree nodes win (insertion
// order breaks ties) and containment ancestors of winners are pulled in.
func (r *Renderer) selectNodes(nodes []ccg.Node, edges []ccg.Edge) map[string]bool {
	include := make(map[string]bool, len(nodes))
	if r.maxNodes <= 0 || len(nodes) <= r.maxNodes {
		for _, n := range nodes {
			include[n.Key] = true
		}
		return include
	}

	degree := make(map[string]int, len(nodes))
	for _, e := range edges {
		degree[e.Source]++
		degree[e.Target]++
	}

	type ranked struct {
		key    string
		degree int
		order  int
	}
	rankedNodes := make([]ranked, len(nodes))
	for i, n := range nodes {
		rankedNodes[i] = ranked{key: n.Key, degree: degree[n.Key], order: i}
	}
	// Stable by construction: degree descending, insertion order ascending.
	for i := 1; i < len(rankedNodes); i++ {
		for j := i; j > 0; j-- {
			a, b := rankedNodes[j-1], rankedNodes[j]
			if b.degree > a.degree || (b.degree == a.degree && b.order < a.order) {
				rankedNodes[j-1], rankedNodes[j] = b, a
			} else {
				break
			}
		}
	}
	for i := 0; i < r.maxNodes && i < len(rankedNodes); i++ {
		include[rankedNodes[i].key] = true
	}

	// Pull in containment parents until the selection is closed upward.
	for changed := true; changed; {
		changed = false
		for _, e := range edges {
			if e.Relation == ccg.RelationContains && include[e.Target] && !include[e.Source] {
				include[e.Source] = true
				changed = true
			}
		}
	}
	return include
}

// shapeFor picks the Mermaid node shape delimiters for a node type:
// directories are subroutine boxes, files rectangles, type-like entities
// hexagons, agent constructs rhombi, and everything callable a stadium.
func shapeFor(t ccg.NodeType) (string, string) {
	switch t {
	case ccg.NodeDirectory:
		return "[[", "]]"
	case ccg.NodeFile:
		return "[", "]"
	case "class", "struct", "interface", "trait", "enum", "type":
		return "{{", "}}"
	case "walker", "node", "ability", "edge":
		return "{", "}"
	default:
		return "(", ")"
	}
}

// displayLabel builds the quoted label text for a node, annotating entities
// with their kind. Falls back to a placeholder when a label cannot be
// encoded at all.
func displayLabel(n ccg.Node) string {
	label := escapeLabel(n.Label)
	if label == "" {
		label = "unnamed"
	}
	switch n.Type {
	case ccg.NodeFile, ccg.NodeDirectory:
		return label
	default:
		return fmt.Sprintf("%s (%s)", label, n.Type)
	}
}

// escapeLabel makes arbitrary identifiers safe inside a quoted Mermaid
// label: quotes become #quot;, structural characters are neutralized, and
// control characters collapse to spaces.
func escapeLabel(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '"':
			sb.WriteString("#quot;")
		case r == '`':
			sb.WriteString("'")
		case r == '[' || r == '{':
			sb.WriteString("(")
		case r == ']' || r == '}':
			sb.WriteString(")")
		case r == '|':
			sb.WriteString("/")
		case r < 0x20:
			sb.WriteString(" ")
		default:
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
