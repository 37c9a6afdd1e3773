package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <term>",
	Short: "Show App Store autocomplete suggestions for a term",
	Long: `Print the raw autocomplete suggestions the App Store returns for a term.

The storefront returns up to 10 suggestions for app-scoped requests, in
relevance order. The suggestion count is the strongest free signal of
search demand: zero means nobody searches the term, a full list means an
active keyword niche.`,
	Example: `  asoscope suggest "virtual pet"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSuggest,
}

func init() {
	RootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	suggestions := client.Suggestions(cmd.Context(), args[0])
	if len(suggestions) == 0 {
		fmt.Printf("No suggestions for %q.\n", args[0])
		return nil
	}

	fmt.Printf("%d suggestion(s) for %q:\n", len(suggestions), args[0])
	for i, s := range suggestions {
		fmt.Printf("%2d. %s\n", i+1, s)
	}
	return nil
}
