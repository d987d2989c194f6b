package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/morgan-labs/codegenius/internal/export"
)

func newAnalyzeCmd(verbose *bool) *cobra.Command {
	var (
		excludeDirs []string
		maxEntities int
		maxNodes    int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "analyze <repo-path>",
		Short: "Parse a repository and emit the full JSON report (entities, graph, diagram)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*verbose)
			defer logger.Sync()

			result, err := runPipeline(cmd.Context(), args[0], excludeDirs, maxEntities, logger)
			if err != nil {
				return err
			}

			if maxNodes <= 0 {
				maxNodes = result.cfg.MaxDiagramNodes
			}
			diagram, err := export.NewRenderer(export.WithMaxNodes(maxNodes)).Render(result.graph)
			if err != nil {
				return fmt.Errorf("render diagram: %w", err)
			}

			report := export.NewReport(args[0], result.parsed, result.failures, result.graph, diagram)

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return report.Write(w)
		},
	}

	cmd.Flags().StringSliceVar(&excludeDirs, "exclude", nil, "directory names to skip (repeatable)")
	cmd.Flags().IntVar(&maxEntities, "max-entities", 0, "reference-scan ceiling (0 = project config or default)")
	cmd.Flags().IntVar(&maxNodes, "max-diagram-nodes", 0, "cap diagram to the n most-connected nodes (0 = unlimited)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}
