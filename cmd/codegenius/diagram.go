package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morgan-labs/codegenius/internal/export"
)

func newDiagramCmd(verbose *bool) *cobra.Command {
	var (
		excludeDirs []string
		maxNodes    int
	)

	cmd := &cobra.Command{
		Use:   "diagram <repo-path>",
		Short: "Parse a repository and print only the Mermaid diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*verbose)
			defer logger.Sync()

			result, err := runPipeline(cmd.Context(), args[0], excludeDirs, 0, logger)
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

			fmt.Fprint(cmd.OutOrStdout(), diagram)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&excludeDirs, "exclude", nil, "directory names to skip (repeatable)")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "cap diagram to the n most-connected nodes (0 = unlimited)")
	return cmd
}
