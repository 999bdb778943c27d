// Package resources registers MCP resources exposed alongside the
// tools, currently the catalog of available tool names.
package resources
