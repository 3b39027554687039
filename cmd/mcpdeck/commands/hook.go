package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mcpdeck/mcpdeck/internal/errors"
	"github.com/mcpdeck/mcpdeck/internal/hook"
	"github.com/mcpdeck/mcpdeck/internal/logging"
)

func init() {
	hookCmd.AddCommand(hookInitCmd)
	rootCmd.AddCommand(hookCmd)
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the agent recommendation hook",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var hookInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the recommendation hook",
	Long: `Install the recommendation hook into .kiro/hooks and refresh the
workspace copy of the server catalog.

The hook is installed disabled; enable it by editing the hook file. An
existing hook document is never overwritten, so your edits survive.`,
	RunE: runHookInit,
}

func runHookInit(cmd *cobra.Command, _ []string) error {
	ws, err := workspaceRoot()
	if err != nil {
		return errors.NewUserError(err, "Pass an existing directory to --workspace")
	}
	manager := hook.NewManager(ws, catalogStore(), logging.FromContext(cmd.Context()))
	return runHookInitWithIO(cmd.OutOrStdout(), manager)
}

// runHookInitWithIO allows injecting a writer and manager for testing.
func runHookInitWithIO(w io.Writer, manager *hook.Manager) error {
	created, err := manager.EnsureHook()
	if err != nil {
		return errors.NewSystemError(err, "Check permissions on .kiro/hooks")
	}

	if created {
		fmt.Fprintf(w, "%s✓%s installed hook at %s\n", colorGreen, colorReset, manager.HookPath())
		fmt.Fprintln(w, "The hook is disabled by default; set \"enabled\": true to turn it on")
	} else {
		fmt.Fprintf(w, "Hook already present at %s; left untouched\n", manager.HookPath())
	}

	if err := manager.BridgeCatalog(); err != nil {
		return errors.NewSystemError(err, "Check permissions on .kiro/settings")
	}
	fmt.Fprintf(w, "%s✓%s refreshed the workspace catalog copy\n", colorGreen, colorReset)
	return nil
}
