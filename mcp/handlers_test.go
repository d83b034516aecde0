package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilcore/hilc/domain"
	"github.com/hilcore/hilc/internal/module"
	"github.com/hilcore/hilc/internal/module/testparser"
	"github.com/hilcore/hilc/mcp"
)

func writeFixture(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func newHandlers() *mcp.HandlerSet {
	deps := mcp.NewDependencies(map[string]module.SourceParser{".hilfix": testparser.New()})
	return mcp.NewHandlerSet(deps)
}

func callRequest(args map[string]interface{}) mcplib.CallToolRequest {
	return mcplib.CallToolRequest{Params: mcplib.CallToolParams{Arguments: args}}
}

func TestHandleCompileRejectsInvalidArguments(t *testing.T) {
	h := newHandlers()
	res, err := h.HandleCompile(context.Background(), mcplib.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleCompileRejectsMissingEntryPaths(t *testing.T) {
	h := newHandlers()
	res, err := h.HandleCompile(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleCompileSucceedsOnWellFormedModule(t *testing.T) {
	dir := t.TempDir()
	main := writeFixture(t, dir, "main.hilfix", `(module main
  (func add ((param a int) (param b int)) int
    (return (op + (name a) (name b)))))`)

	h := newHandlers()
	res, err := h.HandleCompile(context.Background(), callRequest(map[string]interface{}{
		"entry_paths": []interface{}{main},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := textContent(t, res)
	var result domain.CompileResult
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.True(t, result.Succeeded)
	assert.Equal(t, 1, result.ModuleCount)
}

func TestHandleListDependenciesReportsImport(t *testing.T) {
	dir := t.TempDir()
	util := writeFixture(t, dir, "util.hilfix", `(module util
  (global shared int (int 7)))`)
	main := writeFixture(t, dir, "main.hilfix", `(module main
  (import util)
  (func get () int (return (name shared))))`)

	h := newHandlers()
	res, err := h.HandleListDependencies(context.Background(), callRequest(map[string]interface{}{
		"entry_paths": []interface{}{util, main},
		"target_path": main,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var result domain.DepsResult
	require.NoError(t, json.Unmarshal([]byte(textContent(t, res)), &result))
	assert.True(t, result.Succeeded)
	require.Len(t, result.Dependencies, 1)
	assert.Contains(t, result.Dependencies[0], "util")
}

func TestHandleGetModuleListsDeclarations(t *testing.T) {
	dir := t.TempDir()
	main := writeFixture(t, dir, "main.hilfix", `(module main
  (global counter int (int 0))
  (func zero () int (return (int 0))))`)

	h := newHandlers()
	res, err := h.HandleGetModule(context.Background(), callRequest(map[string]interface{}{
		"entry_paths": []interface{}{main},
		"target_path": main,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var result domain.ModuleResult
	require.NoError(t, json.Unmarshal([]byte(textContent(t, res)), &result))
	assert.True(t, result.Succeeded)
	assert.Len(t, result.Declarations, 2)
}

func TestHandleDumpASTWritesFiles(t *testing.T) {
	dir := t.TempDir()
	main := writeFixture(t, dir, "main.hilfix", `(module main
  (func zero () int (return (int 0))))`)
	dumpDir := filepath.Join(dir, "dumps")

	h := newHandlers()
	res, err := h.HandleDumpAST(context.Background(), callRequest(map[string]interface{}{
		"entry_paths": []interface{}{main},
		"target_path": main,
		"dump_dir":    dumpDir,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var result domain.DumpResult
	require.NoError(t, json.Unmarshal([]byte(textContent(t, res)), &result))
	assert.True(t, result.Succeeded)
	_, err = os.Stat(result.TextPath)
	assert.NoError(t, err)
	_, err = os.Stat(result.YAMLPath)
	assert.NoError(t, err)
}

func textContent(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return mcplib.GetTextFromContent(res.Content[0])
}
