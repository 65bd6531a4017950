package mcp

// Mapping from domain errors to the structured MCP error envelope.

import (
	"errors"
	"fmt"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/types"
)

// toMCPError converts a domain error into the {code, message, details}
// envelope the transport returns to callers. Unknown errors become
// OPERATION_FAILED so the caller always sees a stable code.
func toMCPError(err error) *types.MCPError {
	var mcpErr *types.MCPError
	if errors.As(err, &mcpErr) {
		return mcpErr
	}

	var validation *models.ValidationError
	if errors.As(err, &validation) {
		details := map[string]interface{}{
			"field": validation.Field,
			"value": validation.Value,
		}
		if len(validation.Valid) > 0 {
			details["valid_values"] = validation.Valid
		}
		if validation.Pattern != "" {
			details["pattern"] = validation.Pattern
		}
		return types.NewMCPError(types.CodeValidationError, validation.Error(), details)
	}

	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		code := types.CodeOperationFailed
		switch notFound.Entity {
		case "context":
			code = types.CodeContextNotFound
		case "task":
			code = types.CodeTaskNotFound
		case "subtask":
			code = types.CodeSubtaskNotFound
		case "definition":
			code = types.CodeDefinitionNotFound
		}
		return types.NewMCPError(code, notFound.Error(), map[string]interface{}{
			"entity": notFound.Entity,
			"key":    notFound.Key,
		})
	}

	var duplicate *models.DuplicateError
	if errors.As(err, &duplicate) {
		return types.NewMCPError(types.CodeDuplicateDefinition, duplicate.Error(), map[string]interface{}{
			"entity": duplicate.Entity,
			"key":    duplicate.Key,
		})
	}

	var transition *models.TransitionError
	if errors.As(err, &transition) {
		allowed := make([]string, len(transition.Allowed))
		for i, s := range transition.Allowed {
			allowed[i] = string(s)
		}
		return types.NewMCPError(types.CodeInvalidTransition, transition.Error(), map[string]interface{}{
			"from":    string(transition.From),
			"to":      string(transition.To),
			"allowed": allowed,
		})
	}

	var storage *models.StorageError
	if errors.As(err, &storage) {
		return types.NewMCPError(types.CodeStorageError, storage.Error(), map[string]interface{}{
			"path": storage.Path,
		})
	}

	return types.NewMCPError(types.CodeOperationFailed, err.Error(), nil)
}

// failTool logs the failure as a warning notice and returns the mapped
// envelope as the handler error.
func failTool(tool string, err error) *types.MCPError {
	mapped := toMCPError(err)
	logError(fmt.Errorf("%s: %w", tool, mapped))
	return mapped
}
