package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/errors"
	"github.com/mcpdeck/mcpdeck/internal/merge"
	"github.com/mcpdeck/mcpdeck/internal/redact"
)

var catalogShowSecrets bool

func init() {
	catalogShowCmd.Flags().BoolVar(&catalogShowSecrets, "show-secrets", false,
		"Reveal masked secrets in env values")
	catalogCmd.AddCommand(catalogShowCmd)
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <server-id>",
	Short: "Show one catalog server in detail",
	Long: `Show a single catalog server: transport, command or URL, declared
environment variables with their defaults, and tags.

Environment values that look like secrets (TOKEN, KEY, SECRET, ...) are
masked by default. Use --show-secrets to reveal them.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogShow,
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	return runCatalogShowWithIO(cmd.OutOrStdout(), catalogStore(), args[0])
}

// runCatalogShowWithIO allows injecting a writer for testing.
func runCatalogShowWithIO(w io.Writer, cat *catalog.Store, id string) error {
	def, err := cat.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrServerNotFound) {
			return errors.NewUserError(err, "Run: mcpdeck catalog list")
		}
		return errors.NewSystemError(err, "Run: mcpdeck doctor")
	}

	fmt.Fprintf(w, "%s%s%s\n", colorCyan+colorBold, id, colorReset)
	if def.Description != "" {
		fmt.Fprintf(w, "  %s\n", def.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Transport: %s\n", transportLabel(def))
	if def.IsRemote() {
		fmt.Fprintf(w, "  URL:       %s\n", def.HTTPURL)
	} else {
		fmt.Fprintf(w, "  Command:   %s %s\n", def.Command, strings.Join(def.Args, " "))
	}
	if len(def.Tags) > 0 {
		fmt.Fprintf(w, "  Tags:      %s\n", strings.Join(def.Tags, ", "))
	}

	if len(def.Env) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Environment:")

		display := make(map[string]string, len(def.Env))
		for k, v := range def.Env {
			display[k] = merge.CleanDefault(v)
		}
		if !catalogShowSecrets {
			display = redact.MaskSecrets(display)
		}

		keys := make([]string, 0, len(display))
		for k := range display {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			value := display[k]
			if value == "" {
				value = colorGray + "(unset)" + colorReset
			}
			fmt.Fprintf(w, "    %s = %s\n", k, value)
		}
	}

	return nil
}
