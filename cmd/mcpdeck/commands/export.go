package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpdeck/mcpdeck/internal/errors"
	"github.com/mcpdeck/mcpdeck/internal/logging"
	"github.com/mcpdeck/mcpdeck/internal/translate"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json",
		"output format: json, toml, yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active configuration in another format",
	Long: `Export the active MCP configuration for use in tools that take
their server config as TOML or YAML rather than Kiro's JSON.

Key names stay in the JSON wire form in every format.`,
	Example: `  # Print the active configuration as TOML
  mcpdeck export --format toml

  # Write it as YAML to a file
  mcpdeck export -f yaml -o servers.yaml`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, _ []string) error {
	logger := logging.FromContext(cmd.Context())
	store, _, err := workspaceStore(logger)
	if err != nil {
		return errors.NewUserError(err, "Pass an existing directory to --workspace")
	}
	return runExportWithIO(cmd.OutOrStdout(), store, exportFormat, exportOutput)
}

// runExportWithIO allows injecting a writer and store for testing.
func runExportWithIO(w io.Writer, store workspace.Store, format, output string) error {
	f, err := translate.ParseFormat(format)
	if err != nil {
		return errors.NewUserError(err, "Pick one of: json, toml, yaml")
	}

	cfg, err := store.ReadMCPConfig()
	if err != nil {
		return errors.NewSystemError(err, "Run: mcpdeck doctor")
	}

	data, err := translate.Render(cfg, f)
	if err != nil {
		return errors.NewSystemError(err, "Run: mcpdeck doctor")
	}

	if output != "" {
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return errors.NewSystemError(err, "Check permissions on the output path")
		}
		return nil
	}

	_, err = w.Write(data)
	return err
}
