package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hilcore/hilc/app"
	"github.com/hilcore/hilc/domain"
)

// HandlerSet binds the four introspection tools to one Dependencies
// instance, the way the teacher's mcp.HandlerSet binds its tool
// functions to one Dependencies (fileReader, config).
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet creates a HandlerSet bound to deps.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	return &HandlerSet{deps: deps}
}

func stringArg(args map[string]interface{}, key string) (string, bool) {
	s, ok := args[key].(string)
	return s, ok
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func boolArg(args map[string]interface{}, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// HandleCompile handles the "compile" tool: parseSource over every entry
// path followed by processAST (spec.md §6).
func (h *HandlerSet) HandleCompile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	entryPaths := stringSliceArg(args, "entry_paths")
	if len(entryPaths) == 0 {
		return mcp.NewToolResultError("entry_paths parameter is required and must be a non-empty array"), nil
	}
	configPath, _ := stringArg(args, "config_path")

	uc := h.deps.BuildCompileUseCase()
	result, _, err := uc.Execute(ctx, domain.CompileRequest{EntryPaths: entryPaths, ConfigPath: configPath})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("compile failed: %v", err)), nil
	}
	return marshalResult(result)
}

// HandleListDependencies handles the "list_dependencies" tool: spec.md
// §6's `dependencies(uid, recursive)`, layered over a compile of
// entry_paths.
func (h *HandlerSet) HandleListDependencies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	entryPaths := stringSliceArg(args, "entry_paths")
	targetPath, ok := stringArg(args, "target_path")
	if !ok || len(entryPaths) == 0 {
		return mcp.NewToolResultError("entry_paths and target_path parameters are required"), nil
	}
	configPath, _ := stringArg(args, "config_path")
	recursive := boolArg(args, "recursive", false)

	depsUC := app.NewDepsUseCase(h.deps.BuildCompileUseCase())
	result, err := depsUC.Execute(ctx, domain.DepsRequest{
		EntryPaths: entryPaths,
		ConfigPath: configPath,
		TargetPath: targetPath,
		Recursive:  recursive,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dependency listing failed: %v", err)), nil
	}
	return marshalResult(result)
}

// HandleGetModule handles the "get_module" tool: spec.md §6's
// `getModule(uid)`, layered over a compile of entry_paths.
func (h *HandlerSet) HandleGetModule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	entryPaths := stringSliceArg(args, "entry_paths")
	targetPath, ok := stringArg(args, "target_path")
	if !ok || len(entryPaths) == 0 {
		return mcp.NewToolResultError("entry_paths and target_path parameters are required"), nil
	}
	configPath, _ := stringArg(args, "config_path")

	moduleUC := app.NewModuleUseCase(h.deps.BuildCompileUseCase())
	result, err := moduleUC.Execute(ctx, domain.ModuleRequest{
		EntryPaths: entryPaths,
		ConfigPath: configPath,
		TargetPath: targetPath,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("getModule failed: %v", err)), nil
	}
	return marshalResult(result)
}

// HandleDumpAST handles the "dump_ast" tool: spec.md §6's `dumpAST`
// debug facility, layered over a compile of entry_paths.
func (h *HandlerSet) HandleDumpAST(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	entryPaths := stringSliceArg(args, "entry_paths")
	targetPath, ok := stringArg(args, "target_path")
	if !ok || len(entryPaths) == 0 {
		return mcp.NewToolResultError("entry_paths and target_path parameters are required"), nil
	}
	configPath, _ := stringArg(args, "config_path")
	dumpDir, ok := stringArg(args, "dump_dir")
	if !ok || dumpDir == "" {
		dumpDir = "."
	}

	dumpUC := app.NewDumpUseCase(h.deps.BuildCompileUseCase())
	result, err := dumpUC.Execute(ctx, domain.DumpRequest{
		EntryPaths: entryPaths,
		ConfigPath: configPath,
		TargetPath: targetPath,
		DumpDir:    dumpDir,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dumpAST failed: %v", err)), nil
	}
	return marshalResult(result)
}
