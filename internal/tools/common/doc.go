// Package common bridges toolbox definitions onto the MCP server. It
// converts each definition's schema into an MCP tool declaration and
// wraps dispatch results into MCP tool results, so the individual tool
// packages never touch the wire protocol.
package common
