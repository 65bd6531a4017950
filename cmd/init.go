/*
Copyright © 2025 Daniel Soto Pino
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// starterConfig is written by init when no config file exists yet.
const starterConfig = `# simple-taskmanager configuration
# Environment overrides use the TASKMANAGER_ prefix, e.g. TASKMANAGER_DATA_FILE.

data:
  file: simple-taskmanager/tasks.json
  format: json # json, yaml, or toml
  definitionsFile: simple-taskmanager/definitions.json

archive:
  enabled: false
  file: simple-taskmanager/archive.db

telemetry:
  enabled: false
`

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the task data directory and starter config",
	Long: `Create the data directory, an empty task document, and a starter
.taskmanager.yaml in the working directory. Existing files are left
untouched.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	config := GetConfig()

	dir := filepath.Dir(config.Data.File)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	fmt.Printf("✔ Data directory %s\n", dir)

	// Initializing the store creates the lock sidecar and surfaces
	// permission problems immediately. The document file itself appears
	// with the first save.
	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("failed to initialize the task store: %w", err)
	}
	defer func() { _ = taskStore.Close() }()
	fmt.Printf("✔ Task store ready at %s (%s)\n", config.Data.File, config.Data.Format)

	configPath := ".taskmanager.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", configPath, err)
		}
		fmt.Printf("✔ Wrote starter config %s\n", configPath)
	} else {
		fmt.Printf("  %s already exists, leaving it alone\n", configPath)
	}

	fmt.Println("\nReady. Try: simple-taskmanager add \"My first task\"")
	return nil
}
