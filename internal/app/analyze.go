package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/asoscope/internal/analyzer"
	"github.com/blackwell-systems/asoscope/internal/output"
)

var (
	analyzeFile     string
	analyzeCountry  string
	analyzeDetailed bool
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [keywords...]",
	Short: "Score keywords for difficulty, traffic, and opportunity",
	Long: `Analyze one or more keywords against the App Store search index.

Each keyword costs two upstream calls (search + autocomplete) spaced to
respect the external rate ceiling, so expect roughly 7 seconds per keyword.

Keywords come from positional arguments, a file (-f, one keyword per line,
'#' comments allowed), or both. Duplicates are dropped case-insensitively.

Results are sorted by opportunity (traffic / difficulty), the primary
metric for picking keywords to target. A keyword with no discoverable
data is meaningful output: it scores minimal difficulty and traffic
rather than failing.`,
	Example: `  # Score a few candidate keywords
  asoscope analyze "virtual pet" "spirit pet" "ai companion"

  # Keyword list file with per-keyword breakdowns
  asoscope analyze -f keywords.txt --detailed

  # JSON on stdout, progress on stderr
  asoscope analyze "virtual pet" --json

  # Cache upstream responses for repeated runs
  asoscope analyze -f keywords.txt --cache`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "file with keywords (one per line)")
	analyzeCmd.Flags().StringVarP(&analyzeCountry, "country", "c", "us", "storefront country code")
	analyzeCmd.Flags().BoolVarP(&analyzeDetailed, "detailed", "d", false, "show detailed breakdown for each keyword")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output as JSON")

	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := validateCountry(analyzeCountry); err != nil {
		return err
	}

	list, err := collectKeywords(args, analyzeFile)
	if err != nil {
		return err
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	// Progress goes to stderr when --json so stdout stays machine-readable.
	progressOut := io.Writer(os.Stdout)
	if analyzeJSON {
		progressOut = os.Stderr
	}

	fmt.Fprintf(progressOut, "Analyzing %d keyword(s) (~%ds estimated)...\n", len(list), len(list)*7)

	a := analyzer.New(client)
	results := a.AnalyzeAll(cmd.Context(), list, analyzeCountry, func(i, total int, r *analyzer.Analysis) {
		fmt.Fprintln(progressOut, output.FormatProgress(i, total, r))
	})

	return renderResults(cmd.Context(), results)
}

// renderResults sorts by opportunity descending and writes the requested
// representation to stdout.
func renderResults(_ context.Context, results []*analyzer.Analysis) error {
	sortByOpportunity(results)

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return nil
	}

	fmt.Println()
	fmt.Print(output.RenderSummaryTable(results))

	if analyzeDetailed {
		for _, r := range results {
			fmt.Println()
			fmt.Print(output.RenderDetailed(r))
		}
	}
	return nil
}

// sortByOpportunity orders results by opportunity descending, the primary
// ranking for keyword selection.
func sortByOpportunity(results []*analyzer.Analysis) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Opportunity > results[j].Opportunity
	})
}
