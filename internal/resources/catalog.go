package resources

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mcptools/google-toolbox/internal/toolbox"
)

// CatalogURI identifies the tool catalog resource.
const CatalogURI = "google://available-google-tools"

// RegisterCatalog registers a resource listing the names of every tool
// registered on this server, so clients can discover the surface
// without calling anything.
func RegisterCatalog(s *mcpserver.MCPServer, registry *toolbox.Registry) {
	catalog := mcp.NewResource(
		CatalogURI,
		"available-google-tools",
		mcp.WithResourceDescription("Lists the Google tool names available on this MCP server"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(catalog, func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names := CatalogNames(registry)
		data, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

// CatalogNames returns the tool names in registration order.
func CatalogNames(registry *toolbox.Registry) []string {
	defs := registry.Definitions()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}
