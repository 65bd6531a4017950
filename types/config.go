/*
Copyright © 2025 Daniel Soto Pino
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Data      DataConfig      `mapstructure:"data" validate:"required"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	File            string `mapstructure:"file" validate:"required"`
	Format          string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
	DefinitionsFile string `mapstructure:"definitionsFile"`
}

// ArchiveConfig controls the deleted-task archive
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	File    string `mapstructure:"file"`
}

// TelemetryConfig holds anonymous usage reporting settings
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIKey   string `mapstructure:"apiKey" validate:"omitempty,min=1"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}
