package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchemaURL = "https://github.com/danielsotopino/simple-taskmanager/schema/tasks.json"

// DocumentSchema is the JSON Schema the doctor command checks task
// documents against. Dates deliberately use patterns rather than the
// date-time format because stored timestamps carry no UTC offset.
const DocumentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/danielsotopino/simple-taskmanager/schema/tasks.json",
  "title": "Task document",
  "type": "object",
  "propertyNames": {
    "pattern": "^[a-z][a-z0-9-]*$"
  },
  "additionalProperties": {
    "$ref": "#/$defs/context"
  },
  "$defs": {
    "context": {
      "type": "object",
      "required": ["tasks", "metadata"],
      "properties": {
        "tasks": {
          "type": "array",
          "items": { "$ref": "#/$defs/task" }
        },
        "metadata": { "$ref": "#/$defs/metadata" }
      }
    },
    "metadata": {
      "type": "object",
      "required": ["created", "updated", "description", "version"],
      "properties": {
        "created": { "type": "string" },
        "updated": { "type": "string" },
        "description": { "type": "string" },
        "version": { "type": "string" }
      }
    },
    "task": {
      "type": "object",
      "required": ["id", "title", "status", "priority", "creationDate"],
      "properties": {
        "id": { "type": "string", "pattern": "^[0-9]+$" },
        "title": { "type": "string", "minLength": 1 },
        "description": { "type": "string" },
        "priority": { "enum": ["low", "medium", "high", "critical"] },
        "status": { "enum": ["todo", "inprogress", "inreview", "testing", "blocked", "done"] },
        "dependencies": {
          "type": "array",
          "items": { "type": "string" }
        },
        "creationDate": { "type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}$" },
        "completedDate": { "type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}$" },
        "tags": {
          "type": "array",
          "items": { "type": "string", "pattern": "^[a-z0-9-]+$" }
        },
        "blockers": {
          "type": "array",
          "items": { "type": "string" }
        },
        "notes": { "type": "string" },
        "subtasks": {
          "type": "array",
          "items": { "$ref": "#/$defs/subtask" }
        }
      }
    },
    "subtask": {
      "type": "object",
      "required": ["id", "title", "status", "creationDate"],
      "properties": {
        "id": { "type": "string", "pattern": "^[0-9]+$" },
        "title": { "type": "string", "minLength": 1 },
        "description": { "type": "string" },
        "status": { "enum": ["todo", "inprogress", "inreview", "testing", "blocked", "done"] },
        "dependencies": {
          "type": "array",
          "items": { "type": "string" }
        },
        "creationDate": { "type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}$" },
        "completedDate": { "type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}$" },
        "tags": {
          "type": "array",
          "items": { "type": "string", "pattern": "^[a-z0-9-]+$" }
        },
        "blockers": {
          "type": "array",
          "items": { "type": "string" }
        },
        "notes": { "type": "string" },
        "subtasks": {
          "type": "array",
          "items": { "$ref": "#/$defs/subtask" }
        }
      }
    }
  }
}`

// SchemaIssue is one leaf-level schema violation found in a document.
type SchemaIssue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (i SchemaIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Location, i.Message)
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(documentSchemaURL, strings.NewReader(DocumentSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(documentSchemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateDocumentJSON checks raw JSON document bytes against
// DocumentSchema and returns every leaf violation. A non-nil error means
// the bytes could not be checked at all, not that they failed the schema.
func ValidateDocumentJSON(data []byte) ([]SchemaIssue, error) {
	schema, err := documentSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	var issues []SchemaIssue
	collectSchemaIssues(ve, &issues)
	return issues, nil
}

// collectSchemaIssues walks the cause tree and keeps leaf errors, which
// carry the most specific message and instance location.
func collectSchemaIssues(err *jsonschema.ValidationError, issues *[]SchemaIssue) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "(root)"
		}
		*issues = append(*issues, SchemaIssue{Location: loc, Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaIssues(cause, issues)
	}
}
