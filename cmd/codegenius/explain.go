package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/morgan-labs/codegenius/internal/explain"
)

func newExplainCmd(verbose *bool) *cobra.Command {
	var (
		excludeDirs []string
		model       string
	)

	cmd := &cobra.Command{
		Use:   "explain <repo-path> <entity-name>",
		Short: "Generate a natural-language explanation for a named entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*verbose)
			defer logger.Sync()

			repoPath, entityName := args[0], args[1]

			result, err := runPipeline(cmd.Context(), repoPath, excludeDirs, 0, logger)
			if err != nil {
				return err
			}

			if model == "" {
				model = result.cfg.Model
			}
			explainer, err := explain.NewGemini(cmd.Context(), model, logger)
			if err != nil {
				return fmt.Errorf("create explainer: %w", err)
			}

			paths := make([]string, 0, len(result.parsed))
			for p := range result.parsed {
				paths = append(paths, p)
			}
			sort.Strings(paths)

			found := false
			for _, p := range paths {
				for _, ent := range result.parsed[p] {
					if ent.Name != entityName {
						continue
					}
					found = true
					text, err := explainer.Explain(cmd.Context(), explain.NewRequest(ent))
					if err != nil {
						return fmt.Errorf("explain %s: %w", ent.Key(), err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n\n%s\n\n", ent.Kind, ent.Name, ent.Key(), text)
				}
			}
			if !found {
				return fmt.Errorf("no entity named %q found in %s", entityName, repoPath)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&excludeDirs, "exclude", nil, "directory names to skip (repeatable)")
	cmd.Flags().StringVar(&model, "model", "", "text-generation model name (default: project config or "+explain.DefaultModel+")")
	return cmd
}
