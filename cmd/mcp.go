package cmd

import (
	"github.com/spf13/cobra"

	"github.com/periscan/periscan/internal/mcp"
	"github.com/periscan/periscan/internal/runstore"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Periscan MCP server",
	Long:  `Launch an MCP server that allows AI agents to run transit searches via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The server shares stdio with the protocol, so setup must not
		// print anything on success.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, runstore.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
