package common

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mcptools/google-toolbox/internal/logging"
	"github.com/mcptools/google-toolbox/internal/toolbox"
)

// RegisterTools declares every registered tool on the MCP server and
// routes its invocations through the dispatcher. With readOnly set,
// mutating tools are skipped entirely so they are invisible to the
// client, not merely rejected.
func RegisterTools(s *mcpserver.MCPServer, registry *toolbox.Registry, dispatcher *toolbox.Dispatcher, readOnly bool) error {
	if registry.Len() == 0 {
		return fmt.Errorf("no tools registered")
	}

	for _, def := range registry.Definitions() {
		if readOnly && def.Mutating {
			slog.Debug("skipping mutating tool in read-only mode", logging.Tool(def.Name))
			continue
		}

		name := def.Name
		s.AddTool(ToMCPTool(def), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			res := dispatcher.Dispatch(ctx, toolbox.Request{
				Tool:      name,
				Arguments: request.GetArguments(),
			})
			return ToCallToolResult(res), nil
		})
	}

	return nil
}
