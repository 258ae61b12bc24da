package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/skillet-dev/skillet/pkg/mcpserver"
	"github.com/skillet-dev/skillet/pkg/presenter"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the skills to agents over MCP stdio",
	Long: `Serve every registered skill as an MCP (Model Context Protocol) tool over
stdin/stdout so agents can discover and invoke them. The server runs until
the client disconnects or the process is interrupted.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		state, cleanup := newState(ctx)
		defer cleanup()

		if err := mcpserver.ServeStdio(ctx, state); err != nil {
			cleanup()
			presenter.Error(err, "MCP server failed")
			os.Exit(1)
		}
	},
}
