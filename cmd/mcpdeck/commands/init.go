package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/errors"
	"github.com/mcpdeck/mcpdeck/internal/hook"
	"github.com/mcpdeck/mcpdeck/internal/logging"
	"github.com/mcpdeck/mcpdeck/internal/paths"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the workspace for mcpdeck",
	Long: `Initialize the workspace for mcpdeck.

Creates the .kiro/settings directory, the environment-variables document
(if absent), the recommendation hook (if absent), and a workspace-visible
copy of the server catalog for external agents to read.

Running init repeatedly is safe: existing documents are never overwritten.`,
	Example: `  # Initialize the current directory
  mcpdeck init

  # Initialize another workspace
  mcpdeck init --workspace ~/src/myproject`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	ws, err := workspaceRoot()
	if err != nil {
		return errors.NewUserError(err, "Pass an existing directory to --workspace")
	}
	return runInitWithIO(cmd.OutOrStdout(), ws, catalogStore(), logging.FromContext(cmd.Context()))
}

// runInitWithIO allows injecting the writer and workspace for testing.
func runInitWithIO(w io.Writer, ws string, cat *catalog.Store, logger *slog.Logger) error {
	store := workspace.NewFileStore(ws, logger)

	if err := paths.EnsureDir(paths.SettingsDir(ws), 0o755); err != nil {
		return errors.NewSystemError(err, "Check permissions on the workspace directory")
	}

	created, err := store.EnsureEnvVars()
	if err != nil {
		return errors.NewSystemError(err, "Check permissions on .kiro/settings")
	}
	reportStep(w, "environment-variables document", created)

	manager := hook.NewManager(ws, cat, logger)
	hookCreated, err := manager.EnsureHook()
	if err != nil {
		// Hook trouble never blocks the rest of init.
		fmt.Fprintf(w, "  %s!%s recommendation hook skipped: %v\n", colorYellow, colorReset, err)
	} else {
		reportStep(w, "recommendation hook", hookCreated)
	}

	if err := manager.BridgeCatalog(); err != nil {
		return errors.NewSystemError(err, "Check permissions on .kiro/settings")
	}
	fmt.Fprintf(w, "  %s✓%s catalog copied to %s\n", colorGreen, colorReset, paths.CatalogBridgePath(ws))

	fmt.Fprintf(w, "\nWorkspace %s is ready.\n", ws)
	fmt.Fprintln(w, "Next: mcpdeck catalog list, then mcpdeck group load <group>")
	return nil
}

func reportStep(w io.Writer, what string, created bool) {
	if created {
		fmt.Fprintf(w, "  %s✓%s created %s\n", colorGreen, colorReset, what)
		return
	}
	fmt.Fprintf(w, "  %s-%s %s already present\n", colorGray, colorReset, what)
}
