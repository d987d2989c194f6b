package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/morgan-labs/codegenius/internal/ccg"
	"github.com/morgan-labs/codegenius/internal/config"
	"github.com/morgan-labs/codegenius/internal/parse"
	"github.com/morgan-labs/codegenius/internal/repotree"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "codegenius",
		Short:         "Analyze a repository: extract code entities, build the code context graph, render diagrams",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newAnalyzeCmd(&verbose),
		newDiagramCmd(&verbose),
		newExplainCmd(&verbose),
		newMCPCmd(&verbose),
	)
	return cmd
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// analysis bundles the pipeline outputs a command needs.
type analysis struct {
	cfg      *config.ProjectConfig
	tree     []parse.SourceFile
	parsed   map[string][]parse.Entity
	failures []parse.Failure
	graph    *ccg.Graph
}

// runPipeline executes acquisition → dispatch → graph build for one
// repository checkout. excludeDirs and maxEntities from flags win over the
// project config when set.
func runPipeline(ctx context.Context, repoPath string, excludeDirs []string, maxEntities int, logger *zap.Logger) (*analysis, error) {
	cfg, err := config.Load(repoPath)
	if err != nil {
		return nil, err
	}
	if len(excludeDirs) == 0 {
		excludeDirs = cfg.ExcludeDirs
	}
	if maxEntities <= 0 {
		maxEntities = cfg.MaxEntities
	}

	dispatcher := parse.NewDispatcher(parse.WithLogger(logger))
	defer dispatcher.Close()

	tree, err := repotree.Load(repoPath, repotree.Options{
		Extensions:  dispatcher.Extensions(),
		ExcludeDirs: excludeDirs,
	})
	if err != nil {
		return nil, err
	}

	parsed, failures := dispatcher.Dispatch(ctx, tree)

	opts := []ccg.BuilderOption{ccg.WithBuilderLogger(logger)}
	if maxEntities > 0 {
		opts = append(opts, ccg.WithMaxEntities(maxEntities))
	}
	if cfg.NoSimilarName {
		opts = append(opts, ccg.WithSimilarNameFallback(false))
	}
	graph := ccg.NewBuilder(opts...).Build(tree, parsed)

	return &analysis{
		cfg:      cfg,
		tree:     tree,
		parsed:   parsed,
		failures: failures,
		graph:    graph,
	}, nil
}
