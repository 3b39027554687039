package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpdeck/mcpdeck/internal/errors"
	"github.com/mcpdeck/mcpdeck/internal/logging"
	"github.com/mcpdeck/mcpdeck/internal/recommend"
	"github.com/mcpdeck/mcpdeck/pkg/fileutil"
)

var recommendLoadYes bool

func init() {
	recommendLoadCmd.Flags().BoolVarP(&recommendLoadYes, "yes", "y", false,
		"Skip the confirmation prompt")
	recommendCmd.AddCommand(recommendLoadCmd)
	rootCmd.AddCommand(recommendCmd)
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Load server recommendations produced by an agent",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var recommendLoadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Validate agent recommendations and activate the servers",
	Long: `Load a recommendation list produced by an external agent.

The input is a JSON array of {"serverId": ..., "reason": ...} records.
Nothing in it is trusted: malformed records are dropped, IDs unknown to
the catalog are filtered with a warning, and only the surviving servers
replace the active configuration. The recommendation reasons are shown
for review before anything is written.

Reads the named file, or standard input when the file is "-" or omitted.`,
	Example: `  # Paste agent output via stdin
  mcpdeck recommend load

  # Load from a file, skipping confirmation
  mcpdeck recommend load recommendations.json --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommendLoad,
}

func runRecommendLoad(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = fileutil.ReadAllWithLimit(cmd.InOrStdin())
	} else {
		data, err = fileutil.ReadFileWithLimit(args[0])
	}
	if err != nil {
		return errors.NewUserError(err, "Pass a readable JSON file, or pipe the recommendations on stdin")
	}

	logger := logging.FromContext(cmd.Context())
	store, _, err := workspaceStore(logger)
	if err != nil {
		return errors.NewUserError(err, "Pass an existing directory to --workspace")
	}

	loader := recommend.NewLoader(catalogStore(), store, logger)
	return runRecommendLoadWithIO(cmd.OutOrStdout(), cmd.InOrStdin(), loader, data, recommendLoadYes)
}

// runRecommendLoadWithIO allows injecting IO and the loader for testing.
func runRecommendLoadWithIO(w io.Writer, r io.Reader, loader *recommend.Loader, data []byte, yes bool) error {
	if !yes {
		proceed, err := previewAndConfirm(w, r, data)
		if err != nil {
			return err
		}
		if !proceed {
			fmt.Fprintln(w, "Aborted")
			return nil
		}
	}

	outcome := loader.Load(data)
	return reportOutcome(w, outcome)
}

// previewAndConfirm shows the itemized recommendations before anything is
// written. Structural errors surface here so the user is not prompted
// about garbage input.
func previewAndConfirm(w io.Writer, r io.Reader, data []byte) (bool, error) {
	recs, dropped, err := recommend.Parse(data, logging.NewDiscard())
	if err != nil {
		return false, errors.NewUserError(err, "The input must be a JSON array of {serverId, reason} records")
	}
	if len(recs) == 0 && dropped == 0 {
		// Nothing to confirm; the loader reports the empty outcome.
		return true, nil
	}

	fmt.Fprintf(w, "Recommendations (%d record(s), %d malformed dropped):\n", len(recs), dropped)
	for _, rec := range recs {
		fmt.Fprintf(w, "  %s%s%s: %s\n", colorGreen, rec.ServerID, colorReset, truncate(rec.Reason, 80))
	}
	fmt.Fprintln(w)

	return confirm(w, r, "Replace the active configuration with these servers?"), nil
}

func reportOutcome(w io.Writer, outcome *recommend.Outcome) error {
	if len(outcome.UnknownIDs) > 0 {
		fmt.Fprintf(w, "%s!%s ignored servers unknown to the catalog: %s\n",
			colorYellow, colorReset, strings.Join(outcome.UnknownIDs, ", "))
	}
	if outcome.Dropped > 0 {
		fmt.Fprintf(w, "%s!%s dropped %d malformed record(s)\n", colorYellow, colorReset, outcome.Dropped)
	}

	switch outcome.Kind {
	case recommend.KindSuccess:
		fmt.Fprintf(w, "%s✓%s loaded %d server(s)\n", colorGreen, colorReset, len(outcome.LoadedIDs))
		for _, id := range outcome.LoadedIDs {
			fmt.Fprintf(w, "  %s%s%s: %s\n", colorGreen, id, colorReset, truncate(outcome.Reasons[id], 80))
		}
		return nil
	case recommend.KindEmpty:
		fmt.Fprintln(w, "No recommendations in the input; configuration unchanged")
		return nil
	case recommend.KindNoValidServers:
		return errors.NewUserError(errors.New("no valid servers in the recommendations"),
			"Check the serverIds against: mcpdeck catalog list")
	case recommend.KindInvalidFormat:
		return errors.NewUserError(outcome.Err,
			"The input must be a JSON array of {serverId, reason} records")
	case recommend.KindCatalogError:
		return errors.NewSystemError(outcome.Err, "Run: mcpdeck doctor")
	case recommend.KindWriteError:
		return errors.NewSystemError(outcome.Err, "Check permissions on .kiro/settings; the previous configuration was restored if possible")
	default:
		return errors.Newf("unexpected outcome %q", outcome.Kind)
	}
}
