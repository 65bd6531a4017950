/*
Copyright © 2025 Daniel Soto Pino
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielsotopino/simple-taskmanager/mcp"
	"github.com/danielsotopino/simple-taskmanager/types"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server so AI assistants can
manage the same task document as the CLI.

The MCP server runs over stdin/stdout and exposes tools for adding,
listing, and deleting tasks and subtasks, walking subtask trees, moving
tasks through the status workflow, and maintaining tag and feature
definitions.

The server will run until the client disconnects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	// MCP server inherits verbose flag from root command
}

func runMCPServer(ctx context.Context) error {
	mcp.ConfigureHooks(mcp.Hooks{
		GetConfig: func() *types.AppConfig { return GetConfig() },
		LogInfo: func(msg string) {
			if viper.GetBool("verbose") {
				log.Printf("[MCP INFO] %s", msg)
			}
		},
		LogError: func(err error) {
			if viper.GetBool("verbose") {
				log.Printf("[MCP ERROR] %v", err)
			}
		},
		LogToolCall: func(tool string, params interface{}) {
			if viper.GetBool("verbose") {
				log.Printf("[MCP TOOL] %s called with params: %+v", tool, params)
			}
		},
		GetArchiveStore: GetArchiveStore,
		GetVersion:      func() string { return version },
		EnvPrefix:       envPrefix,
	})

	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("failed to initialize task store: %w", err)
	}
	defer func() { _ = taskStore.Close() }()

	impl := &mcpsdk.Implementation{
		Name:    "simple-taskmanager",
		Version: version,
	}
	server := mcpsdk.NewServer(impl, &mcpsdk.ServerOptions{})

	if err := mcp.RegisterCoreTools(server, taskStore); err != nil {
		return fmt.Errorf("failed to register MCP tools: %w", err)
	}
	if err := mcp.RegisterDefinitionTools(server, GetDefinitionStore()); err != nil {
		return fmt.Errorf("failed to register definition tools: %w", err)
	}
	if err := mcp.RegisterResources(server, taskStore); err != nil {
		return fmt.Errorf("failed to register MCP resources: %w", err)
	}
	if err := mcp.RegisterPrompts(server, taskStore); err != nil {
		return fmt.Errorf("failed to register MCP prompts: %w", err)
	}

	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}
