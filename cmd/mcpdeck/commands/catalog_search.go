package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/errors"
)

var catalogSearchInteractive bool

func init() {
	catalogSearchCmd.Flags().BoolVarP(&catalogSearchInteractive, "interactive", "i", false,
		"Pick a server with a fuzzy finder")
	catalogCmd.AddCommand(catalogSearchCmd)
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the catalog by ID, description, or tag",
	Long: `Search catalog servers. The term matches server IDs, descriptions,
and tags, case-insensitively.

With --interactive, opens a fuzzy finder over the whole catalog instead.`,
	Example: `  # Find servers related to AWS
  mcpdeck catalog search aws

  # Pick interactively
  mcpdeck catalog search -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	term := ""
	if len(args) > 0 {
		term = args[0]
	}

	doc, err := catalogStore().Load()
	if err != nil {
		return errors.NewSystemError(err, "Run: mcpdeck doctor")
	}

	if catalogSearchInteractive {
		return runInteractiveSearch(cmd.OutOrStdout(), doc.Search(term))
	}
	return runCatalogSearchWithIO(cmd.OutOrStdout(), doc, term)
}

// runCatalogSearchWithIO allows injecting a writer for testing.
func runCatalogSearchWithIO(w io.Writer, doc *catalog.Document, term string) error {
	matches := doc.Search(term)
	if len(matches) == 0 {
		fmt.Fprintf(w, "No catalog servers match %q\n", term)
		return nil
	}

	for _, m := range matches {
		fmt.Fprintf(w, "%s%s%s  %s\n", colorGreen, m.ID, colorReset, truncate(m.Server.Description, 70))
	}
	return nil
}

func runInteractiveSearch(w io.Writer, matches []catalog.Match) error {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No catalog servers match")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		matches,
		func(i int) string {
			return fmt.Sprintf("%s: %s", matches[i].ID, matches[i].Server.Description)
		},
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i == -1 {
				return ""
			}
			m := matches[i]
			endpoint := m.Server.Command
			if m.Server.IsRemote() {
				endpoint = m.Server.HTTPURL
			}
			return fmt.Sprintf("ID: %s\nTransport: %s\nEndpoint: %s\nTags: %s\n\n%s",
				m.ID,
				transportLabel(m.Server),
				endpoint,
				strings.Join(m.Server.Tags, ", "),
				m.Server.Description,
			)
		}),
	)

	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive search failed")
	}

	m := matches[idx]
	fmt.Fprintf(w, "Selected: %s\n", m.ID)
	fmt.Fprintf(w, "Enable it with: mcpdeck server enable %s\n", m.ID)
	return nil
}
