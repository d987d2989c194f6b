package mcptools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/morgan-labs/codegenius/internal/ccg"
	"github.com/morgan-labs/codegenius/internal/export"
	"github.com/morgan-labs/codegenius/internal/parse"
	"github.com/morgan-labs/codegenius/internal/repotree"
)

// AnalyzeService handles MCP tool calls. It owns a dispatcher and keeps the
// most recent analysis in memory so query and diagram tools can serve it;
// nothing is persisted across process restarts.
type AnalyzeService struct {
	dispatcher *parse.Dispatcher
	logger     *zap.Logger

	mu       sync.Mutex
	parsed   map[string][]parse.Entity
	failures []parse.Failure
	graph    *ccg.Graph
}

// NewAnalyzeService creates an AnalyzeService around the given dispatcher.
func NewAnalyzeService(dispatcher *parse.Dispatcher, logger *zap.Logger) *AnalyzeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyzeService{dispatcher: dispatcher, logger: logger}
}

// AnalyzeRepository walks a repository checkout, parses the recognized
// files, builds the code context graph, and returns its stats.
func (s *AnalyzeService) AnalyzeRepository(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeRepositoryInput,
) (*mcp.CallToolResult, AnalyzeRepositoryOutput, error) {
	if input.RepoPath == "" {
		return nil, AnalyzeRepositoryOutput{}, fmt.Errorf("repoPath is required")
	}

	tree, err := repotree.Load(input.RepoPath, repotree.Options{
		Extensions:  s.dispatcher.Extensions(),
		ExcludeDirs: input.ExcludeDirs,
	})
	if err != nil {
		return nil, AnalyzeRepositoryOutput{}, err
	}

	parsed, failures := s.dispatcher.Dispatch(ctx, tree)

	var builderOpts []ccg.BuilderOption
	if input.MaxEntities > 0 {
		builderOpts = append(builderOpts, ccg.WithMaxEntities(input.MaxEntities))
	}
	builderOpts = append(builderOpts, ccg.WithBuilderLogger(s.logger))
	g := ccg.NewBuilder(builderOpts...).Build(tree, parsed)

	s.mu.Lock()
	s.parsed = parsed
	s.failures = failures
	s.graph = g
	s.mu.Unlock()

	s.logger.Info("repository analyzed",
		zap.String("repo", input.RepoPath),
		zap.Int("files", len(parsed)),
		zap.Int("failures", len(failures)),
	)

	return nil, AnalyzeRepositoryOutput{
		Stats:        g.Stats(),
		FailureCount: len(failures),
	}, nil
}

// QueryEntities searches the last analysis for entities by name substring.
func (s *AnalyzeService) QueryEntities(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input QueryEntitiesInput,
) (*mcp.CallToolResult, QueryEntitiesOutput, error) {
	s.mu.Lock()
	parsed, g := s.parsed, s.graph
	s.mu.Unlock()

	if g == nil {
		return nil, QueryEntitiesOutput{}, fmt.Errorf("no analysis available: call analyze_repository first")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	query := strings.ToLower(input.Query)

	paths := make([]string, 0, len(parsed))
	for p := range parsed {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var hits []EntityHit
	for _, p := range paths {
		for _, ent := range parsed[p] {
			if !strings.Contains(strings.ToLower(ent.Name), query) {
				continue
			}
			if input.Kind != "" && !strings.EqualFold(input.Kind, string(ent.Kind)) {
				continue
			}
			key := ent.Key()
			hits = append(hits, EntityHit{
				Key:          key,
				Name:         ent.Name,
				Kind:         string(ent.Kind),
				FilePath:     ent.FilePath,
				StartLine:    ent.StartLine,
				EndLine:      ent.EndLine,
				Signature:    ent.Signature,
				References:   g.References(key),
				ReferencedBy: g.ReferencedBy(key),
			})
			if len(hits) >= limit {
				return nil, QueryEntitiesOutput{Entities: hits, Total: len(hits)}, nil
			}
		}
	}

	return nil, QueryEntitiesOutput{Entities: hits, Total: len(hits)}, nil
}

// GetDiagram renders the last analysis as Mermaid statements.
func (s *AnalyzeService) GetDiagram(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetDiagramInput,
) (*mcp.CallToolResult, GetDiagramOutput, error) {
	s.mu.Lock()
	g := s.graph
	s.mu.Unlock()

	if g == nil {
		return nil, GetDiagramOutput{}, fmt.Errorf("no analysis available: call analyze_repository first")
	}

	diagram, err := export.NewRenderer(export.WithMaxNodes(input.MaxNodes)).Render(g)
	if err != nil {
		return nil, GetDiagramOutput{}, fmt.Errorf("render diagram: %w", err)
	}
	return nil, GetDiagramOutput{Diagram: diagram}, nil
}

// GetFailures returns the per-file failure notes from the last analysis.
func (s *AnalyzeService) GetFailures(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ GetFailuresInput,
) (*mcp.CallToolResult, GetFailuresOutput, error) {
	s.mu.Lock()
	failures := s.failures
	g := s.graph
	s.mu.Unlock()

	if g == nil {
		return nil, GetFailuresOutput{}, fmt.Errorf("no analysis available: call analyze_repository first")
	}
	return nil, GetFailuresOutput{Failures: failures}, nil
}
