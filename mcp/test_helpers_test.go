package mcp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
	"github.com/danielsotopino/simple-taskmanager/types"
)

// testConfigMu guards access to the shared test configuration.
var testConfigMu sync.RWMutex

// activeTestConfig stores the configuration for the most recent test
// project.
var activeTestConfig *types.AppConfig

// SetupTestProject provisions an isolated data directory and wires the
// package hooks to it, so handlers run in-process against a real file
// store without touching viper or the CLI.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	cfg := &types.AppConfig{}
	cfg.Data.File = filepath.Join(root, "tasks.json")
	cfg.Data.Format = "json"
	cfg.Data.DefinitionsFile = filepath.Join(root, "definitions.json")
	cfg.Archive.File = filepath.Join(root, "archive.db")

	testConfigMu.Lock()
	activeTestConfig = cfg
	testConfigMu.Unlock()

	ConfigureHooks(Hooks{
		GetConfig: func() *types.AppConfig {
			testConfigMu.RLock()
			defer testConfigMu.RUnlock()
			return activeTestConfig
		},
		GetArchiveStore: func() (store.ArchiveStore, error) {
			testConfigMu.RLock()
			path := activeTestConfig.Archive.File
			testConfigMu.RUnlock()
			return store.NewSQLiteArchiveStore(path)
		},
		GetVersion: func() string { return "test" },
		EnvPrefix:  "TASKMANAGER_TEST",
	})

	return root
}

// enableTestArchive flips the archive on for the active test project.
func enableTestArchive(t *testing.T) {
	t.Helper()
	testConfigMu.Lock()
	activeTestConfig.Archive.Enabled = true
	testConfigMu.Unlock()
	t.Cleanup(func() {
		testConfigMu.Lock()
		activeTestConfig.Archive.Enabled = false
		testConfigMu.Unlock()
	})
}

// GetStore initializes a file-backed task store for handler tests.
func GetStore() (store.TaskStore, error) {
	testConfigMu.RLock()
	cfg := activeTestConfig
	testConfigMu.RUnlock()

	if cfg == nil {
		return nil, fmt.Errorf("test configuration not initialized; call SetupTestProject first")
	}

	taskStore := store.NewFileTaskStore()
	if err := taskStore.Initialize(map[string]string{
		"dataFile":       cfg.Data.File,
		"dataFileFormat": cfg.Data.Format,
	}); err != nil {
		return nil, fmt.Errorf("initialize test store: %w", err)
	}
	return taskStore, nil
}

// writeTestDocument seeds the data file with a prebuilt document. The
// checksum sidecar is removed so the next load accepts the new bytes.
func writeTestDocument(t *testing.T, doc models.Document) {
	t.Helper()

	testConfigMu.RLock()
	path := activeTestConfig.Data.File
	testConfigMu.RUnlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal test document: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write test document: %v", err)
	}
	_ = os.Remove(path + ".sha256")
}

// GetDefinitionStore returns a definition store over the test project.
func GetDefinitionStore() (store.DefinitionStore, error) {
	testConfigMu.RLock()
	cfg := activeTestConfig
	testConfigMu.RUnlock()

	if cfg == nil {
		return nil, fmt.Errorf("test configuration not initialized; call SetupTestProject first")
	}
	return store.NewDefinitionStore(afero.NewOsFs(), cfg.Data.DefinitionsFile), nil
}
