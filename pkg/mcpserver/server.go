// Package mcpserver exposes the skill registry over the Model Context
// Protocol so calling agents can invoke the skills as tools.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/skillet-dev/skillet/pkg/logger"
	"github.com/skillet-dev/skillet/pkg/tools"
	tooltypes "github.com/skillet-dev/skillet/pkg/types/tools"
	"github.com/skillet-dev/skillet/pkg/version"
)

// New builds an MCP server publishing every tool of the given state.
func New(state tooltypes.State) (*server.MCPServer, error) {
	s := server.NewMCPServer("skillet", version.Get().Version)

	for _, tool := range state.Tools() {
		schemaBytes, err := json.Marshal(tool.GenerateSchema())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal schema for tool %s", tool.Name())
		}

		mcpTool := mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), schemaBytes)
		s.AddTool(mcpTool, makeHandler(state, tool.Name()))
	}

	return s, nil
}

// ServeStdio runs the MCP server over stdin/stdout until the client
// disconnects or the context is cancelled.
func ServeStdio(ctx context.Context, state tooltypes.State) error {
	s, err := New(state)
	if err != nil {
		return err
	}

	logger.G(ctx).WithField("tools", len(state.Tools())).Info("serving skills over MCP stdio")
	return server.ServeStdio(s)
}

func makeHandler(state tooltypes.State, toolName string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params, err := json.Marshal(req.Params.Arguments)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode tool arguments")
		}

		result := tools.RunTool(ctx, state, toolName, string(params))
		if result.IsError() {
			return mcp.NewToolResultError(result.GetError()), nil
		}
		return mcp.NewToolResultText(result.GetResult()), nil
	}
}
