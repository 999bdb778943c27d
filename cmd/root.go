package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the google-toolbox application
var rootCmd = &cobra.Command{
	Use:   "google-toolbox",
	Short: "MCP server exposing Gmail, Calendar, Drive and web search tools",
	Long: `google-toolbox is an MCP (Model Context Protocol) server that gives AI
assistants access to a single Google account: listing and sending Gmail
messages, managing Calendar events, searching and reading Drive files,
and running Google web searches.

Credentials come from the environment (GOOGLE_CLIENT_ID,
GOOGLE_CLIENT_SECRET, GOOGLE_REFRESH_TOKEN); run the auth command once
to obtain a refresh token.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "google-toolbox version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("google-toolbox version %s\n", version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
