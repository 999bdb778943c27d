package common

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mcptools/google-toolbox/internal/toolbox"
)

// ToCallToolResult converts a dispatch result into the MCP wire shape.
// Payloads are rendered as JSON; failures become MCP error results
// prefixed with the failure kind so clients can react programmatically.
func ToCallToolResult(res toolbox.Result) *mcp.CallToolResult {
	if !res.OK {
		return mcp.NewToolResultError(res.Err.Error())
	}

	if s, ok := res.Payload.(string); ok {
		return mcp.NewToolResultText(s)
	}

	data, err := json.MarshalIndent(res.Payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// ToMCPTool converts a tool definition into its MCP declaration.
func ToMCPTool(def toolbox.Definition) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}

	for _, f := range def.Schema {
		var fieldOpts []mcp.PropertyOption
		if f.Required {
			fieldOpts = append(fieldOpts, mcp.Required())
		}
		if f.Description != "" {
			fieldOpts = append(fieldOpts, mcp.Description(f.Description))
		}

		switch f.Type {
		case toolbox.TypeInt:
			opts = append(opts, mcp.WithNumber(f.Name, fieldOpts...))
		case toolbox.TypeBool:
			opts = append(opts, mcp.WithBoolean(f.Name, fieldOpts...))
		default:
			// Times and string lists travel as strings on the wire; the
			// schema coerces them on validation.
			opts = append(opts, mcp.WithString(f.Name, fieldOpts...))
		}
	}

	return mcp.NewTool(def.Name, opts...)
}
