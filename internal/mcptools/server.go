package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewMCPServer creates an MCP server with the analysis tools registered.
func NewMCPServer(svc *AnalyzeService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "codegenius",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_repository",
		Description: "Analyze a repository checkout: parse its source files per language, build the code context graph of entities and relationships, and return graph statistics.",
	}, svc.AnalyzeRepository)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_entities",
		Description: "Search the last analysis for entities (functions, classes, walkers, etc.) by name substring. Returns each match with the graph keys it references and is referenced by.",
	}, svc.QueryEntities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_diagram",
		Description: "Render the last analysis as Mermaid diagram statements, optionally capped to the most-connected nodes.",
	}, svc.GetDiagram)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_failures",
		Description: "Return the per-file parse failure notes from the last analysis.",
	}, svc.GetFailures)

	return server
}

// RunMCPServer starts an HTTP server exposing the analysis MCP tools.
func RunMCPServer(ctx context.Context, svc *AnalyzeService, addr string) error {
	server := NewMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
