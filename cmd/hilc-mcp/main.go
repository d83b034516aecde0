package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hilcore/hilc/mcp"
)

const (
	serverName    = "hilc"
	serverVersion = "1.0.0"
)

func main() {
	// MCP uses stdout for JSON-RPC; route logging to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	deps := mcp.NewDependencies(nil)
	handlers := mcp.NewHandlerSet(deps)
	mcp.RegisterTools(server, handlers)

	log.Printf("starting %s MCP server v%s", serverName, serverVersion)
	log.Println("registered tools:")
	log.Println("  - compile: parse and resolve a set of source files")
	log.Println("  - list_dependencies: report a module's dependencies")
	log.Println("  - get_module: report a module's resolved declarations")
	log.Println("  - dump_ast: dump a module's resolved AST")
	log.Println("server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
