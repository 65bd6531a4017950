package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/internal/ui"
)

// watchDebounce batches editor write bursts into one re-render.
const watchDebounce = 300 * time.Millisecond

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the task document and re-render on changes",
	Long: `Watch the data file for writes from other processes (editors, the MCP
server, another shell) and print an updated per-context summary each
time it changes. Ctrl-C exits.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dataFile := GetConfig().Data.File

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: atomic saves replace the file
	// by rename, which drops a direct file watch.
	dir := filepath.Dir(dataFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if err := renderWatchSummary(dataFile); err != nil {
		PrintError("Failed to render summary", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var debounce *time.Timer
	renderCh := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(dataFile) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case renderCh <- struct{}{}:
				default:
				}
			})
		case <-renderCh:
			if err := renderWatchSummary(dataFile); err != nil {
				PrintError("Failed to render summary", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			PrintError("Watcher error", err)
		case <-sigCh:
			fmt.Println("\nStopped watching.")
			return nil
		}
	}
}

// renderWatchSummary reloads the document and prints one line per
// context.
func renderWatchSummary(dataFile string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = taskStore.Close() }()

	doc, err := taskStore.GetDocument()
	if err != nil {
		return err
	}

	fmt.Printf("\n[%s] %s\n", time.Now().Format("15:04:05"), dataFile)
	if len(doc) == 0 {
		fmt.Println("  (no contexts)")
		return nil
	}

	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println("  " + ui.RenderContextSummaryLine(name, doc[name]))
	}
	return nil
}
