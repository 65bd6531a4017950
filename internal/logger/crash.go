// Package logger provides crash logging and recovery for the task manager.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the directory for crash logs relative to the app dir.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep.
	MaxCrashLogs = 10
)

// crashContext stores context for crash logging.
type crashContext struct {
	mu        sync.RWMutex
	lastInput string
	command   string
	version   string
	basePath  string
}

var globalContext = &crashContext{}

// SetBasePath sets the base path for crash logs (typically the
// .taskmanager directory).
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the current command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetLastInput sets the last user input for crash context.
func SetLastInput(input string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastInput = truncateForLog(strings.TrimSpace(input), 500)
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog represents a crash log entry.
type CrashLog struct {
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Command    string    `json:"command"`
	PanicValue string    `json:"panic_value"`
	StackTrace string    `json:"stack_trace"`
	LastInput  string    `json:"last_input,omitempty"`
	GoVersion  string    `json:"go_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// HandlePanic is a deferred function that recovers from panics and logs them.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	if r := recover(); r != nil {
		entry := createCrashLog(r)
		if err := writeCrashLog(entry); err != nil {
			fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
			fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, debug.Stack())
		}

		fmt.Fprintf(os.Stderr, "\nThe task manager encountered an unexpected error.\n")
		fmt.Fprintf(os.Stderr, "A crash log has been saved to:\n  %s\n\n", getCrashLogPath(entry.Timestamp))
		fmt.Fprintf(os.Stderr, "Please report this issue at:\n  https://github.com/danielsotopino/simple-taskmanager/issues\n\n")

		os.Exit(1)
	}
}

// createCrashLog creates a CrashLog from a panic value.
func createCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastInput:  globalContext.lastInput,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

// writeCrashLog writes a crash log to disk.
func writeCrashLog(entry CrashLog) error {
	dir := getCrashLogDir()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create crash log dir: %w", err)
	}

	if err := cleanOldCrashLogs(dir); err != nil {
		// Non-fatal, continue with writing
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}

	path := getCrashLogPath(entry.Timestamp)
	if err := os.WriteFile(path, []byte(formatCrashLog(entry)), 0644); err != nil {
		return fmt.Errorf("write crash log: %w", err)
	}
	return nil
}

// getCrashLogDir returns the directory for crash logs.
func getCrashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = ".taskmanager"
	}
	return filepath.Join(basePath, CrashLogDir)
}

// getCrashLogPath returns the path for a crash log file.
func getCrashLogPath(t time.Time) string {
	filename := fmt.Sprintf("crash_%s.log", t.Format("20060102_150405"))
	return filepath.Join(getCrashLogDir(), filename)
}

// formatCrashLog formats a CrashLog as human-readable text.
func formatCrashLog(entry CrashLog) string {
	var sb strings.Builder
	rule := strings.Repeat("-", 80)

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString("TASK MANAGER CRASH LOG\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("Timestamp: %s\n", entry.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Version:   %s\n", entry.Version))
	sb.WriteString(fmt.Sprintf("Command:   %s\n", entry.Command))
	sb.WriteString(fmt.Sprintf("Go:        %s\n", entry.GoVersion))
	sb.WriteString(fmt.Sprintf("OS/Arch:   %s/%s\n", entry.OS, entry.Arch))

	sb.WriteString("\n" + rule + "\nPANIC VALUE\n" + rule + "\n")
	sb.WriteString(entry.PanicValue + "\n")

	sb.WriteString("\n" + rule + "\nSTACK TRACE\n" + rule + "\n")
	sb.WriteString(entry.StackTrace)

	if entry.LastInput != "" {
		sb.WriteString("\n" + rule + "\nLAST USER INPUT\n" + rule + "\n")
		sb.WriteString(entry.LastInput + "\n")
	}

	sb.WriteString("\n" + strings.Repeat("=", 80) + "\n")
	return sb.String()
}

// cleanOldCrashLogs removes old crash logs, keeping only the
// MaxCrashLogs most recent.
func cleanOldCrashLogs(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var crashLogs []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			crashLogs = append(crashLogs, e)
		}
	}

	if len(crashLogs) <= MaxCrashLogs {
		return nil
	}

	// ReadDir sorts by name, and names embed the timestamp, so the
	// oldest logs come first.
	toRemove := len(crashLogs) - MaxCrashLogs
	for i := range toRemove {
		path := filepath.Join(dir, crashLogs[i].Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", crashLogs[i].Name(), err)
		}
	}
	return nil
}

// ListCrashLogs returns the paths of all crash logs.
func ListCrashLogs() ([]string, error) {
	dir := getCrashLogDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	return logs, nil
}
