/*
Copyright © 2025 Daniel Soto Pino
*/
package types

// ContextSummary describes one context for listings and MCP resources
type ContextSummary struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Version       string         `json:"version"`
	Created       string         `json:"created"`
	Updated       string         `json:"updated"`
	TaskCount     int            `json:"task_count"`
	SubtaskCount  int            `json:"subtask_count"`
	TasksByStatus map[string]int `json:"tasks_by_status"`
}

// ContextListResponse for context listings
type ContextListResponse struct {
	Total    int              `json:"total"`
	Contexts []ContextSummary `json:"contexts"`
}

// SystemStatus is a health snapshot served as an MCP resource
type SystemStatus struct {
	Version        string `json:"version"`
	DataFile       string `json:"data_file"`
	DataFormat     string `json:"data_format"`
	DataFileExists bool   `json:"data_file_exists"`
	ContextCount   int    `json:"context_count"`
	TaskCount      int    `json:"task_count"`
	SubtaskCount   int    `json:"subtask_count"`
	ArchiveEnabled bool   `json:"archive_enabled"`
	ArchivedCount  int    `json:"archived_count,omitempty"`
}
