package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// printJSON writes a value to stdout as indented JSON for the --json
// output mode on read commands.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

// joinArgs rebuilds a phrase from shell-split arguments.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
