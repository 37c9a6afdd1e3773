package app

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/asoscope/internal/analyzer"
	"github.com/blackwell-systems/asoscope/internal/output"
)

var (
	watchFile    string
	watchCountry string

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Re-analyze a keyword file whenever it changes",
		Long: `Watch a keyword list file and re-run the analysis on every change.

Useful while iterating on a candidate list: edit the file, save, and the
refreshed scores appear. Each pass analyzes the keywords sequentially
under the same rate limiting as 'analyze', so large lists take a while
per save. Press Ctrl+C to stop.`,
		Example: `  # Re-score whenever keywords.txt is saved
  asoscope watch -f keywords.txt

  # Against another storefront, with response caching
  asoscope watch -f keywords.txt -c de --cache`,
		RunE: runWatch,
	}
)

// debounceWindow coalesces the burst of filesystem events editors emit on
// save (write + chmod, or remove + rename for atomic saves).
const debounceWindow = 500 * time.Millisecond

func init() {
	watchCmd.Flags().StringVarP(&watchFile, "file", "f", "", "file with keywords (one per line)")
	watchCmd.Flags().StringVarP(&watchCountry, "country", "c", "us", "storefront country code")
	watchCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := validateCountry(watchCountry); err != nil {
		return err
	}

	absPath, err := filepath.Abs(watchFile)
	if err != nil {
		return fmt.Errorf("failed to resolve keyword file path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("keyword file not accessible: %w", err)
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	a := analyzer.New(client)

	// Watch the parent directory: editors replace files on save, which
	// drops inotify watches on the file itself.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", absPath)

	// Initial pass before the first change.
	runWatchPass(cmd, a, absPath)

	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			log.Info().Str("file", absPath).Msg("keyword file changed, re-analyzing")
			runWatchPass(cmd, a, absPath)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")

		case <-sigCh:
			fmt.Println("\nStopping watch.")
			return nil
		}
	}
}

// runWatchPass runs one sequential analysis pass over the current file
// contents. Failures to read the file are logged, not fatal: the watch
// loop keeps running for the next save.
func runWatchPass(cmd *cobra.Command, a *analyzer.Analyzer, path string) {
	list, err := collectKeywords(nil, path)
	if err != nil {
		log.Warn().Err(err).Msg("skipping pass")
		return
	}

	results := a.AnalyzeAll(cmd.Context(), list, watchCountry, func(i, total int, r *analyzer.Analysis) {
		fmt.Println(output.FormatProgress(i, total, r))
	})

	sortByOpportunity(results)
	fmt.Println()
	fmt.Print(output.RenderSummaryTable(results))
	fmt.Println()
}
