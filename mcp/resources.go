package mcp

// MCP resources: read-only JSON views over the document, the contexts,
// the active configuration, and a health snapshot.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
	"github.com/danielsotopino/simple-taskmanager/types"
)

// RegisterResources registers the read-only MCP resources.
func RegisterResources(server *mcpsdk.Server, taskStore store.TaskStore) error {
	server.AddResource(&mcpsdk.Resource{
		URI:         "taskmanager://tasks",
		Name:        "tasks",
		Description: "Every task across all contexts, annotated with its context name",
		MIMEType:    "application/json",
	}, tasksResourceHandler(taskStore))

	server.AddResource(&mcpsdk.Resource{
		URI:         "taskmanager://contexts",
		Name:        "contexts",
		Description: "Context summaries: task counts, status breakdown, metadata",
		MIMEType:    "application/json",
	}, contextsResourceHandler(taskStore))

	server.AddResource(&mcpsdk.Resource{
		URI:         "taskmanager://config",
		Name:        "config",
		Description: "Active configuration",
		MIMEType:    "application/json",
	}, configResourceHandler())

	server.AddResource(&mcpsdk.Resource{
		URI:         "taskmanager://system-status",
		Name:        "system-status",
		Description: "Health snapshot: data file, counts, archive state",
		MIMEType:    "application/json",
	}, systemStatusResourceHandler(taskStore))

	return nil
}

func jsonResource(uri string, v interface{}) (*mcpsdk.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource %s: %w", uri, err)
	}
	return &mcpsdk.ReadResourceResult{
		Contents: []*mcpsdk.ResourceContents{
			{URI: uri, MIMEType: "application/json", Text: string(data)},
		},
	}, nil
}

func tasksResourceHandler(taskStore store.TaskStore) mcpsdk.ResourceHandler {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.ReadResourceParams) (*mcpsdk.ReadResourceResult, error) {
		page, err := taskStore.ListTasks(store.TaskFilter{Limit: -1})
		if err != nil {
			return nil, fmt.Errorf("list tasks for resource: %w", err)
		}
		logInfo(fmt.Sprintf("Provided tasks resource with %d tasks", page.Total))
		return jsonResource(params.URI, taskPageToResponse(page))
	}
}

func contextsResourceHandler(taskStore store.TaskStore) mcpsdk.ResourceHandler {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.ReadResourceParams) (*mcpsdk.ReadResourceResult, error) {
		doc, err := taskStore.GetDocument()
		if err != nil {
			return nil, fmt.Errorf("load document for resource: %w", err)
		}
		summaries := buildContextSummaries(doc)
		return jsonResource(params.URI, types.ContextListResponse{Total: len(summaries), Contexts: summaries})
	}
}

func configResourceHandler() mcpsdk.ResourceHandler {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.ReadResourceParams) (*mcpsdk.ReadResourceResult, error) {
		return jsonResource(params.URI, currentConfig())
	}
}

func systemStatusResourceHandler(taskStore store.TaskStore) mcpsdk.ResourceHandler {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.ReadResourceParams) (*mcpsdk.ReadResourceResult, error) {
		doc, err := taskStore.GetDocument()
		if err != nil {
			return nil, fmt.Errorf("load document for status: %w", err)
		}

		cfg := currentConfig()
		status := types.SystemStatus{
			Version:        currentVersion(),
			DataFile:       cfg.Data.File,
			DataFormat:     cfg.Data.Format,
			ContextCount:   len(doc),
			ArchiveEnabled: cfg.Archive.Enabled,
		}
		if _, err := os.Stat(cfg.Data.File); err == nil {
			status.DataFileExists = true
		}
		for _, c := range doc {
			status.TaskCount += len(c.Tasks)
			for i := range c.Tasks {
				status.SubtaskCount += models.CountSubtasks(c.Tasks[i].Subtasks)
			}
		}
		if cfg.Archive.Enabled {
			if arch, err := archiveStore(); err == nil {
				if stats, err := arch.Stats(); err == nil {
					status.ArchivedCount = stats.TotalEntries
				}
			}
		}
		return jsonResource(params.URI, status)
	}
}

// buildContextSummaries condenses the document into per-context
// summaries, sorted by context name.
func buildContextSummaries(doc models.Document) []types.ContextSummary {
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]types.ContextSummary, 0, len(names))
	for _, name := range names {
		c := doc[name]
		summary := types.ContextSummary{
			Name:          name,
			Description:   c.Metadata.Description,
			Version:       c.Metadata.Version,
			Created:       c.Metadata.Created,
			Updated:       c.Metadata.Updated,
			TaskCount:     len(c.Tasks),
			TasksByStatus: map[string]int{},
		}
		for i := range c.Tasks {
			summary.TasksByStatus[string(c.Tasks[i].Status)]++
			summary.SubtaskCount += models.CountSubtasks(c.Tasks[i].Subtasks)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
