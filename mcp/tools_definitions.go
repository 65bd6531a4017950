package mcp

// Tag/feature definition tools: pass-through CRUD over the glossary
// document.

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
	"github.com/danielsotopino/simple-taskmanager/types"
)

func addDefinitionHandler(definitionStore store.DefinitionStore) mcpsdk.ToolHandlerFor[types.AddDefinitionParams, types.DefinitionResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.AddDefinitionParams]) (*mcpsdk.CallToolResultFor[types.DefinitionResponse], error) {
		args := params.Arguments
		logToolCall("add_definition", args)

		def, err := definitionStore.CreateDefinition(args.Name, models.DefinitionKind(args.Kind), args.Description)
		if err != nil {
			return nil, failTool("add_definition", err)
		}

		notice := fmt.Sprintf("Registered %s definition '%s'", def.Kind, def.Name)
		logInfo(notice)
		return textResult(notice, types.DefinitionResponse{Definition: def}), nil
	}
}

func listDefinitionsHandler(definitionStore store.DefinitionStore) mcpsdk.ToolHandlerFor[types.ListDefinitionsParams, types.DefinitionListResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ListDefinitionsParams]) (*mcpsdk.CallToolResultFor[types.DefinitionListResponse], error) {
		args := params.Arguments
		logToolCall("list_definitions", args)

		defs, err := definitionStore.ListDefinitions(models.DefinitionKind(args.Kind))
		if err != nil {
			return nil, failTool("list_definitions", err)
		}

		notice := fmt.Sprintf("Found %d definitions", len(defs))
		return textResult(notice, types.DefinitionListResponse{Total: len(defs), Definitions: defs}), nil
	}
}

func getDefinitionHandler(definitionStore store.DefinitionStore) mcpsdk.ToolHandlerFor[types.GetDefinitionParams, types.DefinitionResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.GetDefinitionParams]) (*mcpsdk.CallToolResultFor[types.DefinitionResponse], error) {
		args := params.Arguments
		logToolCall("get_definition", args)

		def, err := definitionStore.GetDefinition(args.Name)
		if err != nil {
			return nil, failTool("get_definition", err)
		}

		notice := fmt.Sprintf("Definition '%s' (%s): %s", def.Name, def.Kind, def.Description)
		return textResult(notice, types.DefinitionResponse{Definition: def}), nil
	}
}

func updateDefinitionHandler(definitionStore store.DefinitionStore) mcpsdk.ToolHandlerFor[types.UpdateDefinitionParams, types.DefinitionResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.UpdateDefinitionParams]) (*mcpsdk.CallToolResultFor[types.DefinitionResponse], error) {
		args := params.Arguments
		logToolCall("update_definition", args)

		def, err := definitionStore.UpdateDefinition(args.Name, args.Description, models.DefinitionKind(args.Kind))
		if err != nil {
			return nil, failTool("update_definition", err)
		}

		notice := fmt.Sprintf("Updated definition '%s'", def.Name)
		logInfo(notice)
		return textResult(notice, types.DefinitionResponse{Definition: def}), nil
	}
}

func deleteDefinitionHandler(definitionStore store.DefinitionStore) mcpsdk.ToolHandlerFor[types.DeleteDefinitionParams, types.DeleteResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.DeleteDefinitionParams]) (*mcpsdk.CallToolResultFor[types.DeleteResponse], error) {
		args := params.Arguments
		logToolCall("delete_definition", args)

		if err := definitionStore.DeleteDefinition(args.Name); err != nil {
			return nil, failTool("delete_definition", err)
		}

		notice := fmt.Sprintf("Deleted definition '%s'", args.Name)
		logInfo(notice)
		return textResult(notice, types.DeleteResponse{Success: true, Message: notice}), nil
	}
}
