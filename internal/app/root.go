package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	cacheEnabled bool
	cacheTTL     time.Duration
	cacheFile    string

	// RootCmd is the root command for asoscope
	RootCmd = &cobra.Command{
		Use:   "asoscope",
		Short: "App Store keyword difficulty & opportunity scorer",
		Long: `asoscope estimates how hard it is to rank for App Store search keywords,
how much search traffic they attract, and scores the opportunity
(traffic / difficulty) to rank candidate keywords by attractiveness.

It queries the free iTunes Search API and the search-hints autocomplete
endpoint, spacing calls to stay under Apple's ~20 calls/minute ceiling,
so a run takes roughly 7 seconds per keyword.

Signals:
  • Difficulty (0-100, lower = easier): title matches, competitor rating
    volume, title saturation, update freshness of the top results
  • Traffic (0-100, higher = more searches): autocomplete suggestion count
    and match, total result count, mid-tier rating spread

Examples:
  # Analyze keywords given on the command line
  asoscope analyze "virtual pet" "ai companion"

  # Analyze a keyword list file with detailed breakdowns
  asoscope analyze -f keywords.txt --detailed

  # Machine-readable output
  asoscope analyze "virtual pet" --json

  # Re-analyze whenever the keyword file changes
  asoscope watch -f keywords.txt

  # Just show the autocomplete suggestions for a term
  asoscope suggest "virtual pet"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("asoscope: App Store keyword difficulty & opportunity scorer")
			fmt.Println()
			fmt.Println("Run 'asoscope analyze <keyword>' to score a keyword.")
			fmt.Println("Run 'asoscope --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	RootCmd.PersistentFlags().BoolVar(&cacheEnabled, "cache", false, "cache upstream responses on disk")
	RootCmd.PersistentFlags().DurationVar(&cacheTTL, "cache-ttl", 24*time.Hour, "max age of cached responses")
	RootCmd.PersistentFlags().StringVar(&cacheFile, "cache-file", "", "cache path (default: ~/.asoscope/cache.db)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// initLogging configures zerolog with console output on stderr so stdout
// stays clean for tables and JSON.
func initLogging() {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// getCachePath returns the cache path, using the flag value or default.
func getCachePath() (string, error) {
	if cacheFile != "" {
		return cacheFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	asoscopeDir := filepath.Join(home, ".asoscope")
	if err := os.MkdirAll(asoscopeDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create asoscope directory: %w", err)
	}

	return filepath.Join(asoscopeDir, "cache.db"), nil
}
