package mcp

import (
	"context"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/danielsotopino/simple-taskmanager/types"
)

func TestDefinitionHandlers(t *testing.T) {
	SetupTestProject(t)
	ds, err := GetDefinitionStore()
	if err != nil {
		t.Fatalf("get definition store: %v", err)
	}

	add := addDefinitionHandler(ds)
	res, err := add(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddDefinitionParams]{
		Arguments: types.AddDefinitionParams{Name: "api", Kind: "tag", Description: "API surface work"},
	})
	if err != nil {
		t.Fatalf("add_definition: %v", err)
	}
	if res.StructuredContent.Name != "api" {
		t.Fatalf("unexpected definition: %+v", res.StructuredContent)
	}

	if _, err := add(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddDefinitionParams]{
		Arguments: types.AddDefinitionParams{Name: "api", Kind: "tag"},
	}); err == nil {
		t.Fatal("duplicate name should fail")
	} else if code := mcpErrorCode(t, err); code != types.CodeDuplicateDefinition {
		t.Errorf("code = %s, want %s", code, types.CodeDuplicateDefinition)
	}

	if _, err := add(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddDefinitionParams]{
		Arguments: types.AddDefinitionParams{Name: "Bad Name", Kind: "tag"},
	}); err == nil {
		t.Fatal("invalid tag name should fail")
	} else if code := mcpErrorCode(t, err); code != types.CodeValidationError {
		t.Errorf("code = %s, want %s", code, types.CodeValidationError)
	}

	list := listDefinitionsHandler(ds)
	listed, err := list(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.ListDefinitionsParams]{
		Arguments: types.ListDefinitionsParams{Kind: "tag"},
	})
	if err != nil {
		t.Fatalf("list_definitions: %v", err)
	}
	if listed.StructuredContent.Total != 1 {
		t.Fatalf("total = %d, want 1", listed.StructuredContent.Total)
	}

	update := updateDefinitionHandler(ds)
	updated, err := update(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.UpdateDefinitionParams]{
		Arguments: types.UpdateDefinitionParams{Name: "api", Description: "HTTP endpoints and contracts"},
	})
	if err != nil {
		t.Fatalf("update_definition: %v", err)
	}
	if updated.StructuredContent.Description != "HTTP endpoints and contracts" {
		t.Fatalf("description not updated: %+v", updated.StructuredContent)
	}

	if _, err := update(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.UpdateDefinitionParams]{
		Arguments: types.UpdateDefinitionParams{Name: "ghost", Description: "x"},
	}); err == nil {
		t.Fatal("updating a missing definition should fail")
	} else if code := mcpErrorCode(t, err); code != types.CodeDefinitionNotFound {
		t.Errorf("code = %s, want %s", code, types.CodeDefinitionNotFound)
	}

	del := deleteDefinitionHandler(ds)
	if _, err := del(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.DeleteDefinitionParams]{
		Arguments: types.DeleteDefinitionParams{Name: "api"},
	}); err != nil {
		t.Fatalf("delete_definition: %v", err)
	}

	get := getDefinitionHandler(ds)
	if _, err := get(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.GetDefinitionParams]{
		Arguments: types.GetDefinitionParams{Name: "api"},
	}); err == nil {
		t.Fatal("definition should be gone")
	} else if code := mcpErrorCode(t, err); code != types.CodeDefinitionNotFound {
		t.Errorf("code = %s, want %s", code, types.CodeDefinitionNotFound)
	}
}
