package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/morgan-labs/codegenius/internal/mcptools"
	"github.com/morgan-labs/codegenius/internal/parse"
)

func newMCPCmd(verbose *bool) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analysis tools over the Model Context Protocol (HTTP)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(*verbose)
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			dispatcher := parse.NewDispatcher(parse.WithLogger(logger))
			defer dispatcher.Close()

			svc := mcptools.NewAnalyzeService(dispatcher, logger)
			logger.Info("mcp server listening", zap.String("addr", addr))
			return mcptools.RunMCPServer(ctx, svc, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8391", "listen address")
	return cmd
}
