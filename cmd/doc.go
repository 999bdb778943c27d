// Package cmd implements the command-line interface for google-toolbox.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the Google tools
//   - auth: Run the one-time OAuth consent flow to obtain a refresh token
//   - version: Display version information
//
// The serve command is the default when no subcommand is specified.
package cmd
