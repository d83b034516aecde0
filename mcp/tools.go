package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the four compiler-core introspection tools
// with s, dispatching each to handlers.
func RegisterTools(s *server.MCPServer, handlers *HandlerSet) {
	s.AddTool(mcp.NewTool("compile",
		mcp.WithDescription("Parse and resolve a set of HIL/SPD source files, reporting diagnostics and success"),
		mcp.WithArray("entry_paths",
			mcp.Required(),
			mcp.Description("Source file paths to parse and compile")),
		mcp.WithString("config_path",
			mcp.Description("Optional .hilc.toml/.hilc.yaml configuration path")),
	), handlers.HandleCompile)

	s.AddTool(mcp.NewTool("list_dependencies",
		mcp.WithDescription("Compile entry_paths and list target_path's module dependencies"),
		mcp.WithArray("entry_paths",
			mcp.Required(),
			mcp.Description("Source file paths to parse and compile")),
		mcp.WithString("target_path",
			mcp.Required(),
			mcp.Description("Path of the module whose dependencies should be listed")),
		mcp.WithString("config_path",
			mcp.Description("Optional .hilc.toml/.hilc.yaml configuration path")),
		mcp.WithBoolean("recursive",
			mcp.Description("Include transitive dependencies (default: false)")),
	), handlers.HandleListDependencies)

	s.AddTool(mcp.NewTool("get_module",
		mcp.WithDescription("Compile entry_paths and report target_path's resolved declarations"),
		mcp.WithArray("entry_paths",
			mcp.Required(),
			mcp.Description("Source file paths to parse and compile")),
		mcp.WithString("target_path",
			mcp.Required(),
			mcp.Description("Path of the module to report on")),
		mcp.WithString("config_path",
			mcp.Description("Optional .hilc.toml/.hilc.yaml configuration path")),
	), handlers.HandleGetModule)

	s.AddTool(mcp.NewTool("dump_ast",
		mcp.WithDescription("Compile entry_paths and dump target_path's resolved AST as a .txt/.yaml pair"),
		mcp.WithArray("entry_paths",
			mcp.Required(),
			mcp.Description("Source file paths to parse and compile")),
		mcp.WithString("target_path",
			mcp.Required(),
			mcp.Description("Path of the module to dump")),
		mcp.WithString("config_path",
			mcp.Description("Optional .hilc.toml/.hilc.yaml configuration path")),
		mcp.WithString("dump_dir",
			mcp.Description("Destination directory for the dump pair (default: current directory)")),
	), handlers.HandleDumpAST)
}
