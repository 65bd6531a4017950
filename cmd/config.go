package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielsotopino/simple-taskmanager/types"
)

const (
	configName = ".taskmanager"
	envPrefix  = "TASKMANAGER"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. A missing .env is fine.
	_ = godotenv.Load()

	// Environment variable handling must be set up BEFORE reading the
	// config file so env vars can influence config loading.
	viper.SetEnvPrefix(envPrefix)                          // e.g., TASKMANAGER_VERBOSE
	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // TASKMANAGER_DATA_FILE -> data.file

	cfgFileFlag := viper.GetString("config") // Value from --config flag

	if cfgFileFlag != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFileFlag)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(".")        // ./.taskmanager.yaml
		viper.AddConfigPath(home)       // $HOME/.taskmanager.yaml
		viper.SetConfigName(configName) // Looking for a file named ".taskmanager"
	}

	// Attempt to read the configuration file.
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	// Set default values
	viper.SetDefault("data.file", "simple-taskmanager/tasks.json")
	viper.SetDefault("data.format", "json")
	viper.SetDefault("data.definitionsFile", "simple-taskmanager/definitions.json")
	viper.SetDefault("archive.enabled", false)
	viper.SetDefault("archive.file", "simple-taskmanager/archive.db")
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.apiKey", "")
	viper.SetDefault("telemetry.endpoint", "")

	// The original tool located its document through TASKS_FILE_PATH.
	// Honor it when the prefixed variable is not set.
	if legacy := os.Getenv("TASKS_FILE_PATH"); legacy != "" && os.Getenv(envPrefix+"_DATA_FILE") == "" {
		viper.Set("data.file", legacy)
	}

	// After all sources are configured, unmarshal into GlobalAppConfig
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// Validate the populated configuration
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
