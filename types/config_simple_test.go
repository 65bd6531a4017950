package types

import (
	"testing"
)

func TestAppConfig_Structure(t *testing.T) {
	config := AppConfig{
		Verbose: true,
		Data: DataConfig{
			File:            "/home/user/.taskmanager/tasks.json",
			Format:          "json",
			DefinitionsFile: "/home/user/.taskmanager/definitions.json",
		},
		Archive: ArchiveConfig{
			Enabled: true,
			File:    "/home/user/.taskmanager/archive.db",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}

	if config.Data.Format != "json" {
		t.Errorf("Data.Format mismatch: got %q, want %q", config.Data.Format, "json")
	}
	if !config.Archive.Enabled {
		t.Error("Archive.Enabled should be true")
	}
	if config.Telemetry.Enabled {
		t.Error("Telemetry.Enabled should default to off")
	}
}

func TestDataConfig_Structure(t *testing.T) {
	config := DataConfig{
		File:   "tasks.yaml",
		Format: "yaml",
	}

	if config.File != "tasks.yaml" {
		t.Errorf("File mismatch: got %q, want %q", config.File, "tasks.yaml")
	}
	if config.Format != "yaml" {
		t.Errorf("Format mismatch: got %q, want %q", config.Format, "yaml")
	}
}
