package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the bundled MCP server catalog",
	Long: `Browse the curated catalog of MCP servers bundled with mcpdeck.

The catalog is read-only. Activating servers from it is done with
'mcpdeck group load', 'mcpdeck server enable', or 'mcpdeck recommend load'.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}
