package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/errors"
	"github.com/mcpdeck/mcpdeck/internal/loadout"
	"github.com/mcpdeck/mcpdeck/internal/logging"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

var groupLoadYes bool

func init() {
	groupLoadCmd.Flags().BoolVarP(&groupLoadYes, "yes", "y", false,
		"Skip the confirmation prompt")
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupLoadCmd)
	rootCmd.AddCommand(groupCmd)
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Work with named server groups",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available server groups",
	RunE:  runGroupList,
}

var groupLoadCmd = &cobra.Command{
	Use:   "load [group]",
	Short: "Replace the active configuration with a group",
	Long: `Load a named group of servers.

Loading a group is a total replacement: the current configuration is
discarded and rebuilt from the group's servers with current environment
values. A confirmation prompt is shown unless --yes is given.

If no group is named and the configuration file sets default_group,
that group is loaded.`,
	Example: `  # Load the core group
  mcpdeck group load core

  # Load without the confirmation prompt
  mcpdeck group load aws --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGroupLoad,
}

func runGroupList(cmd *cobra.Command, _ []string) error {
	return runGroupListWithIO(cmd.OutOrStdout(), catalogStore())
}

// runGroupListWithIO allows injecting a writer for testing.
func runGroupListWithIO(w io.Writer, cat *catalog.Store) error {
	doc, err := cat.LoadTemplates()
	if err != nil {
		return errors.NewSystemError(err, "Run: mcpdeck doctor")
	}

	keys := make([]string, 0, len(doc.Templates))
	for key := range doc.Templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		tpl := doc.Templates[key]
		fmt.Fprintf(w, "%s%s%s  %s\n", colorCyan+colorBold, key, colorReset, tpl.Name)
		fmt.Fprintf(w, "  %s\n", tpl.Description)
		fmt.Fprintf(w, "  servers: %s\n", strings.Join(tpl.Servers, ", "))
	}
	return nil
}

func runGroupLoad(cmd *cobra.Command, args []string) error {
	key := ""
	if len(args) > 0 {
		key = args[0]
	}
	if key == "" && appCfg != nil {
		key = appCfg.DefaultGroup
	}
	if key == "" {
		return errors.NewUserError(nil, "Name a group, or set default_group in the config file. Run: mcpdeck group list")
	}

	logger := logging.FromContext(cmd.Context())
	store, _, err := workspaceStore(logger)
	if err != nil {
		return errors.NewUserError(err, "Pass an existing directory to --workspace")
	}

	return runGroupLoadWithIO(cmd.OutOrStdout(), cmd.InOrStdin(),
		loadout.NewBuilder(catalogStore(), store, logger), store, key, groupLoadYes)
}

// runGroupLoadWithIO allows injecting IO and stores for testing.
func runGroupLoadWithIO(w io.Writer, r io.Reader, builder *loadout.Builder, store workspace.Store, key string, yes bool) error {
	if !yes {
		current, err := store.ReadMCPConfig()
		if err == nil && len(current.MCPServers) > 0 {
			prompt := fmt.Sprintf("Loading group %q replaces the %d currently active server(s). Continue?",
				key, len(current.MCPServers))
			if !confirm(w, r, prompt) {
				fmt.Fprintln(w, "Aborted")
				return nil
			}
		}
	}

	result, err := builder.LoadGroup(key)
	if err != nil {
		if errors.Is(err, catalog.ErrGroupNotFound) {
			return errors.NewUserError(err, "Run: mcpdeck group list")
		}
		return errors.NewSystemError(err, "Run: mcpdeck doctor")
	}

	fmt.Fprintf(w, "%s✓%s loaded group %q with %d server(s): %s\n",
		colorGreen, colorReset, key, len(result.Loaded), strings.Join(result.Loaded, ", "))
	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "%s!%s skipped servers missing from the catalog: %s\n",
			colorYellow, colorReset, strings.Join(result.Skipped, ", "))
	}
	return nil
}
