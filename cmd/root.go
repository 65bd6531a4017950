/*
Copyright © 2025 Daniel Soto Pino
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielsotopino/simple-taskmanager/internal/logger"
	"github.com/danielsotopino/simple-taskmanager/internal/telemetry"
	"github.com/danielsotopino/simple-taskmanager/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "simple-taskmanager",
	Short: "Manage tasks and nested subtasks across named contexts.",
	Long: `simple-taskmanager keeps tasks with arbitrarily nested subtasks in
named contexts, backed by a single JSON, YAML, or TOML document.
It also runs as an MCP server so AI assistants can manage the same tasks.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)
	logger.SetVersion(version)
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskmanager.yaml or $HOME/.taskmanager.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		trackCommand(cmd.Name())
	}
}

// trackCommand reports one command invocation when telemetry is enabled.
// Reporting failures never surface to the user.
func trackCommand(name string) {
	client := telemetry.NewClient(GetConfig().Telemetry, version)
	client.Track("command_executed", telemetry.Properties{"command": name})
	_ = client.Close()
}

// GetStore initializes and returns the task store using the unified types.AppConfig.
func GetStore() (store.TaskStore, error) {
	s := store.NewFileTaskStore()
	config := GetConfig()

	err := s.Initialize(map[string]string{
		"dataFile":       config.Data.File,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", config.Data.File, err)
	}
	return s, nil
}

// GetDefinitionStore returns the tag and feature definition store.
func GetDefinitionStore() store.DefinitionStore {
	return store.NewOsDefinitionStore(GetConfig().Data.DefinitionsFile)
}

// GetArchiveStore opens the deleted-task archive database.
func GetArchiveStore() (store.ArchiveStore, error) {
	config := GetConfig()
	arch, err := store.NewSQLiteArchiveStore(config.Archive.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive at %s: %w", config.Archive.File, err)
	}
	return arch, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
// It can be narrowed with a filter before presentation.
func selectTaskInteractive(taskStore store.TaskStore, filter store.TaskFilter, label string) (store.ListedTask, error) {
	filter.Limit = -1
	page, err := taskStore.ListTasks(filter)
	if err != nil {
		return store.ListedTask{}, fmt.Errorf("failed to list tasks for selection: %w", err)
	}

	if len(page.Tasks) == 0 {
		return store.ListedTask{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Inactive: `  {{ .Title | faint }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "Context:\t" | faint }} {{ .Context }}
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Description:\t" | faint }} {{ .Description }}
{{ "Status:\t" | faint }} {{ .Status }}
{{ "Priority:\t" | faint }} {{ .Priority }}`,
	}

	searcher := func(input string, index int) bool {
		task := page.Tasks[index]
		name := strings.ToLower(task.Title)
		id := task.ID
		input = strings.ToLower(input)
		return strings.Contains(name, input) || strings.Contains(id, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     page.Tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return store.ListedTask{}, err // Return error as is (includes promptui.ErrInterrupt)
	}

	return page.Tasks[i], nil
}

// confirmPrompt asks a yes/no question and returns the answer.
func confirmPrompt(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}
