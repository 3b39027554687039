package commands

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/errors"
	"github.com/mcpdeck/mcpdeck/internal/loadout"
	"github.com/mcpdeck/mcpdeck/internal/logging"
	"github.com/mcpdeck/mcpdeck/internal/redact"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

var serverListShowSecrets bool

func init() {
	serverListCmd.Flags().BoolVar(&serverListShowSecrets, "show-secrets", false,
		"Reveal masked secrets in env values")
	serverCmd.AddCommand(serverListCmd)
	serverCmd.AddCommand(serverEnableCmd)
	serverCmd.AddCommand(serverDisableCmd)
	rootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage individually active servers",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active servers in this workspace",
	RunE:  runServerList,
}

var serverEnableCmd = &cobra.Command{
	Use:   "enable <server-id>",
	Short: "Add one catalog server to the active configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runServerEnable,
}

var serverDisableCmd = &cobra.Command{
	Use:   "disable <server-id>",
	Short: "Remove one server from the active configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runServerDisable,
}

func runServerList(cmd *cobra.Command, _ []string) error {
	logger := logging.FromContext(cmd.Context())
	store, _, err := workspaceStore(logger)
	if err != nil {
		return errors.NewUserError(err, "Pass an existing directory to --workspace")
	}
	return runServerListWithIO(cmd.OutOrStdout(), store)
}

// runServerListWithIO allows injecting a writer and store for testing.
func runServerListWithIO(w io.Writer, store workspace.Store) error {
	cfg, err := store.ReadMCPConfig()
	if err != nil {
		return errors.NewSystemError(err, "Run: mcpdeck doctor")
	}

	if len(cfg.MCPServers) == 0 {
		fmt.Fprintln(w, "No servers active")
		fmt.Fprintln(w, "Activate some with: mcpdeck group load <group> or mcpdeck server enable <id>")
		return nil
	}

	ids := cfg.IDs()
	sort.Strings(ids)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sID%s\t%sTRANSPORT%s\t%sENDPOINT%s\t%sENV%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)

	for _, id := range ids {
		def := cfg.MCPServers[id]
		endpoint := def.Command
		if def.IsRemote() {
			endpoint = def.HTTPURL
		}

		env := def.Env
		if !serverListShowSecrets {
			env = redact.MaskSecrets(def.Env)
		}

		fmt.Fprintf(tw, "%s%s%s\t%s\t%s\t%s\n",
			colorGreen, id, colorReset,
			transportLabel(def),
			truncate(endpoint, 50),
			formatEnv(env))
	}
	tw.Flush()

	return nil
}

func formatEnv(env map[string]string) string {
	if len(env) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%s", k, env[k])
	}
	return truncate(out, 60)
}

func runServerEnable(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())
	store, _, err := workspaceStore(logger)
	if err != nil {
		return errors.NewUserError(err, "Pass an existing directory to --workspace")
	}
	return runServerEnableWithIO(cmd.OutOrStdout(),
		loadout.NewBuilder(catalogStore(), store, logger), args[0])
}

// runServerEnableWithIO allows injecting a writer and builder for testing.
func runServerEnableWithIO(w io.Writer, builder *loadout.Builder, id string) error {
	if err := builder.Enable(id); err != nil {
		if errors.Is(err, catalog.ErrServerNotFound) {
			return errors.NewUserError(err, "Run: mcpdeck catalog list")
		}
		return errors.NewSystemError(err, "Run: mcpdeck doctor")
	}

	fmt.Fprintf(w, "%s✓%s enabled %s\n", colorGreen, colorReset, id)
	return nil
}

func runServerDisable(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())
	store, _, err := workspaceStore(logger)
	if err != nil {
		return errors.NewUserError(err, "Pass an existing directory to --workspace")
	}
	return runServerDisableWithIO(cmd.OutOrStdout(),
		loadout.NewBuilder(catalogStore(), store, logger), args[0])
}

// runServerDisableWithIO allows injecting a writer and builder for testing.
func runServerDisableWithIO(w io.Writer, builder *loadout.Builder, id string) error {
	removed, err := builder.Disable(id)
	if err != nil {
		return errors.NewSystemError(err, "Run: mcpdeck doctor")
	}

	if !removed {
		fmt.Fprintf(w, "%s was not active\n", id)
		return nil
	}
	fmt.Fprintf(w, "%s✓%s disabled %s\n", colorGreen, colorReset, id)
	return nil
}
