package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcpdeck/mcpdeck/internal/editor"
	"github.com/mcpdeck/mcpdeck/internal/errors"
	"github.com/mcpdeck/mcpdeck/internal/logging"
	"github.com/mcpdeck/mcpdeck/internal/paths"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

func init() {
	envCmd.AddCommand(envEditCmd)
	envCmd.AddCommand(envPathCmd)
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage workspace environment-variable values",
	Long: `Manage the workspace environment-variables document.

Values in this document fill the environment variables that catalog
servers declare. The document is user-owned: mcpdeck creates it once
from a template and never touches it again.

Values are stored in plaintext; keep the file out of version control
if it holds secrets.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var envEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the environment-variables document in $EDITOR",
	Long: `Open the environment-variables document in your editor.

Creates the document from a template on first use. The editor is taken
from the 'editor' config key, then $EDITOR, falling back to $VISUAL,
then nano, then vi.`,
	RunE: runEnvEdit,
}

var envPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the environment-variables document",
	RunE:  runEnvPath,
}

func runEnvEdit(cmd *cobra.Command, _ []string) error {
	logger := logging.FromContext(cmd.Context())
	ws, err := workspaceRoot()
	if err != nil {
		return errors.NewUserError(err, "Pass an existing directory to --workspace")
	}

	store := workspace.NewFileStore(ws, logger)
	created, err := store.EnsureEnvVars()
	if err != nil {
		return errors.NewSystemError(err, "Check permissions on .kiro/settings")
	}
	if created {
		fmt.Fprintln(cmd.OutOrStdout(), "Created the environment-variables document from the template")
	}

	override := ""
	if appCfg != nil {
		override = appCfg.Editor
	}
	if err := editor.Open(paths.EnvVarsPath(ws), override); err != nil {
		return errors.NewUserError(err, "Set $EDITOR or the 'editor' config key to a working editor")
	}
	return nil
}

func runEnvPath(cmd *cobra.Command, _ []string) error {
	ws, err := workspaceRoot()
	if err != nil {
		return errors.NewUserError(err, "Pass an existing directory to --workspace")
	}
	fmt.Fprintln(cmd.OutOrStdout(), paths.EnvVarsPath(ws))
	return nil
}
