package ccg

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// NodeType classifies graph nodes: the entity kinds plus the two synthetic
// containment-root types.
type NodeType string

const (
	NodeFile      NodeType = "file"
	NodeDirectory NodeType = "directory"
)

// Relation classifies edges.
type Relation string

const (
	RelationContains    Relation = "contains"
	RelationReferences  Relation = "references"
	RelationSimilarName Relation = "similar-name"
)

// Node is one vertex of the code context graph.
type Node struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Type  NodeType `json:"type"`
}

// Edge is a directed relationship between two node keys.
type Edge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Relation Relation `json:"relation"`
}

// Stats summarizes a graph.
type Stats struct {
	NodeCount      int      `json:"nodeCount"`
	EdgeCount      int      `json:"edgeCount"`
	FileCount      int      `json:"fileCount"`
	DirectoryCount int      `json:"directoryCount"`
	EntityCount    int      `json:"entityCount"`
	ComponentCount int      `json:"componentCount"`
	AvgConnections float64  `json:"avgConnections"`
	Degraded       bool     `json:"degraded"`
	Warnings       []string `json:"warnings,omitempty"`
}

type edgeKey struct {
	source, target string
	relation       Relation
}

// Graph is a directed multigraph over files, directories, and entities.
// Nodes live in an insertion-ordered arena so that iteration — and therefore
// rendered output — is deterministic. Exact-duplicate edges are collapsed
// and edges naming unknown keys are dropped, not errors. Built once per run,
// never mutated afterwards.
type Graph struct {
	nodes    *orderedmap.OrderedMap[string, Node]
	edges    []Edge
	seen     map[edgeKey]bool
	degraded bool
	warnings []string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: orderedmap.New[string, Node](),
		seen:  make(map[edgeKey]bool),
	}
}

// AddNode inserts a node. Re-adding an existing key is a no-op and returns
// false.
func (g *Graph) AddNode(n Node) bool {
	if _, ok := g.nodes.Get(n.Key); ok {
		return false
	}
	g.nodes.Set(n.Key, n)
	return true
}

// HasNode reports whether a key is present.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes.Get(key)
	return ok
}

// Node returns the node for a key.
func (g *Graph) Node(key string) (Node, bool) {
	return g.nodes.Get(key)
}

// AddEdge inserts an edge. Edges referencing a nonexistent node key and
// exact (source, target, relation) duplicates are dropped; both return
// false.
func (g *Graph) AddEdge(e Edge) bool {
	if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
		return false
	}
	k := edgeKey{e.Source, e.Target, e.Relation}
	if g.seen[k] {
		return false
	}
	g.seen[k] = true
	g.edges = append(g.edges, e)
	return true
}

// HasEdge reports whether the exact (source, target, relation) triple exists.
func (g *Graph) HasEdge(source, target string, relation Relation) bool {
	return g.seen[edgeKey{source, target, relation}]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, g.nodes.Len())
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// References returns the keys this node points at via references edges, in
// edge insertion order.
func (g *Graph) References(key string) []string {
	var out []string
	for _, e := range g.edges {
		if e.Relation == RelationReferences && e.Source == key {
			out = append(out, e.Target)
		}
	}
	return out
}

// ReferencedBy returns the keys that point at this node via references
// edges, in edge insertion order.
func (g *Graph) ReferencedBy(key string) []string {
	var out []string
	for _, e := range g.edges {
		if e.Relation == RelationReferences && e.Target == key {
			out = append(out, e.Source)
		}
	}
	return out
}

// markDegraded records that reference inference was skipped.
func (g *Graph) markDegraded(warning string) {
	g.degraded = true
	g.warnings = append(g.warnings, warning)
}

// Degraded reports whether reference inference was skipped for scale.
func (g *Graph) Degraded() bool { return g.degraded }

// Stats returns node/edge counts, the connected-component count over the
// undirected view of the graph, and the degraded-mode flag.
func (g *Graph) Stats() Stats {
	s := Stats{
		NodeCount: g.nodes.Len(),
		EdgeCount: len(g.edges),
		Degraded:  g.degraded,
		Warnings:  g.warnings,
	}
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		switch pair.Value.Type {
		case NodeFile:
			s.FileCount++
		case NodeDirectory:
			s.DirectoryCount++
		default:
			s.EntityCount++
		}
	}
	s.ComponentCount = g.componentCount()
	if s.NodeCount > 0 {
		s.AvgConnections = float64(s.EdgeCount) / float64(s.NodeCount)
	}
	return s
}

// componentCount finds connected components over the undirected adjacency
// via BFS.
func (g *Graph) componentCount() int {
	adj := make(map[string][]string, g.nodes.Len())
	for _, e := range g.edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	visited := make(map[string]bool, g.nodes.Len())
	count := 0
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		key := pair.Key
		if visited[key] {
			continue
		}
		count++
		queue := []string{key}
		visited[key] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return count
}
