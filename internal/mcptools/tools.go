package mcptools

import (
	"github.com/morgan-labs/codegenius/internal/ccg"
	"github.com/morgan-labs/codegenius/internal/parse"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// AnalyzeRepositoryInput is the input for the analyze_repository MCP tool.
type AnalyzeRepositoryInput struct {
	RepoPath    string   `json:"repoPath" jsonschema:"the absolute path to the repository checkout to analyze"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from the walk (e.g. vendor, node_modules)"`
	MaxEntities int      `json:"maxEntities,omitempty" jsonschema:"reference-scan ceiling; above it the graph degrades to containment edges"`
}

// AnalyzeRepositoryOutput is the result of the analyze_repository MCP tool.
type AnalyzeRepositoryOutput struct {
	Stats        ccg.Stats `json:"stats"`
	FailureCount int       `json:"failureCount"`
}

// QueryEntitiesInput is the input for the query_entities MCP tool.
type QueryEntitiesInput struct {
	Query string `json:"query" jsonschema:"search query for entity names (substring match, case-insensitive)"`
	Kind  string `json:"kind,omitempty" jsonschema:"filter by entity kind: function, method, class, struct, interface, enum, trait, type, walker, node, ability, edge, global"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// EntityHit is one query_entities match, enriched with the entity's graph
// neighbors.
type EntityHit struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	FilePath     string   `json:"filePath"`
	StartLine    int      `json:"startLine,omitempty"`
	EndLine      int      `json:"endLine,omitempty"`
	Signature    string   `json:"signature,omitempty"`
	References   []string `json:"references,omitempty"`
	ReferencedBy []string `json:"referencedBy,omitempty"`
}

// QueryEntitiesOutput is the result of the query_entities MCP tool.
type QueryEntitiesOutput struct {
	Entities []EntityHit `json:"entities"`
	Total    int         `json:"total"`
}

// GetDiagramInput is the input for the get_diagram MCP tool.
type GetDiagramInput struct {
	MaxNodes int `json:"maxNodes,omitempty" jsonschema:"cap the diagram to the n most-connected nodes (0 = unlimited)"`
}

// GetDiagramOutput is the result of the get_diagram MCP tool.
type GetDiagramOutput struct {
	Diagram string `json:"diagram"`
}

// GetFailuresInput is the input for the get_failures MCP tool.
type GetFailuresInput struct{}

// GetFailuresOutput is the result of the get_failures MCP tool.
type GetFailuresOutput struct {
	Failures []parse.Failure `json:"failures"`
}
