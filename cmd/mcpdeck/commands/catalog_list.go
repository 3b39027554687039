package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/errors"
)

var (
	catalogListJSON bool
	catalogListTag  string
)

func init() {
	catalogListCmd.Flags().BoolVar(&catalogListJSON, "json", false, "Output in JSON format")
	catalogListCmd.Flags().StringVar(&catalogListTag, "tag", "", "Only show servers carrying this tag")
	catalogCmd.AddCommand(catalogListCmd)
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog servers",
	Long: `List the MCP servers available in the catalog.

Examples:
  # List all servers
  mcpdeck catalog list

  # Only database-related servers
  mcpdeck catalog list --tag database

  # Output as JSON
  mcpdeck catalog list --json`,
	RunE: runCatalogList,
}

// catalogEntryJSON represents a catalog server in JSON output.
type catalogEntryJSON struct {
	ID          string   `json:"id"`
	Transport   string   `json:"transport"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	return runCatalogListWithIO(cmd.OutOrStdout(), catalogStore())
}

// runCatalogListWithIO allows injecting a writer for testing.
func runCatalogListWithIO(w io.Writer, cat *catalog.Store) error {
	doc, err := cat.Load()
	if err != nil {
		return errors.NewSystemError(err, "Run: mcpdeck doctor")
	}

	var matches []catalog.Match
	if catalogListTag != "" {
		matches = doc.FilterByTag(catalogListTag)
	} else {
		matches = doc.Search("")
	}

	if catalogListJSON {
		entries := make([]catalogEntryJSON, len(matches))
		for i, m := range matches {
			entries[i] = catalogEntryJSON{
				ID:          m.ID,
				Transport:   transportLabel(m.Server),
				Description: m.Server.Description,
				Tags:        m.Server.Tags,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(matches) == 0 {
		fmt.Fprintln(w, "No catalog servers match")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sID%s\t%sTRANSPORT%s\t%sTAGS%s\t%sDESCRIPTION%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)

	for _, m := range matches {
		fmt.Fprintf(tw, "%s%s%s\t%s\t%s\t%s\n",
			colorGreen, m.ID, colorReset,
			transportLabel(m.Server),
			strings.Join(m.Server.Tags, ","),
			truncate(m.Server.Description, 60))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d servers\n", len(matches))
	return nil
}
