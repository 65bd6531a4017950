package mcp

import (
	"fmt"

	"github.com/danielsotopino/simple-taskmanager/store"
	"github.com/danielsotopino/simple-taskmanager/types"
)

// Hooks carries the runtime dependencies the CLI layer injects at
// startup. The mcp package never reads viper or opens stores on its
// own; everything arrives through these function pointers so handler
// tests can swap in fakes.
type Hooks struct {
	GetConfig       func() *types.AppConfig
	LogInfo         func(string)
	LogError        func(error)
	LogToolCall     func(string, interface{})
	GetArchiveStore func() (store.ArchiveStore, error)
	GetVersion      func() string
	EnvPrefix       string
}

var hooks = Hooks{
	GetConfig:   func() *types.AppConfig { return &types.AppConfig{} },
	LogInfo:     func(string) {},
	LogError:    func(error) {},
	LogToolCall: func(string, interface{}) {},
	GetArchiveStore: func() (store.ArchiveStore, error) {
		return nil, fmt.Errorf("archive store not configured")
	},
	GetVersion: func() string { return "dev" },
	EnvPrefix:  "TASKMANAGER",
}

// ConfigureHooks allows the CLI layer to inject runtime dependencies
// needed by the MCP handlers. Nil fields keep their current value.
func ConfigureHooks(h Hooks) {
	if h.GetConfig != nil {
		hooks.GetConfig = h.GetConfig
	}
	if h.LogInfo != nil {
		hooks.LogInfo = h.LogInfo
	}
	if h.LogError != nil {
		hooks.LogError = h.LogError
	}
	if h.LogToolCall != nil {
		hooks.LogToolCall = h.LogToolCall
	}
	if h.GetArchiveStore != nil {
		hooks.GetArchiveStore = h.GetArchiveStore
	}
	if h.GetVersion != nil {
		hooks.GetVersion = h.GetVersion
	}
	if h.EnvPrefix != "" {
		hooks.EnvPrefix = h.EnvPrefix
	}
}

func currentConfig() *types.AppConfig {
	if hooks.GetConfig == nil {
		return &types.AppConfig{}
	}
	cfg := hooks.GetConfig()
	if cfg == nil {
		return &types.AppConfig{}
	}
	return cfg
}

func logInfo(msg string) {
	if hooks.LogInfo != nil {
		hooks.LogInfo(msg)
	}
}

func logError(err error) {
	if hooks.LogError != nil {
		hooks.LogError(err)
	}
}

func logToolCall(name string, params interface{}) {
	if hooks.LogToolCall != nil {
		hooks.LogToolCall(name, params)
	}
}

func archiveStore() (store.ArchiveStore, error) {
	return hooks.GetArchiveStore()
}

func currentVersion() string {
	return hooks.GetVersion()
}
