// Command blueprint-mcp is an MCP (Model Context Protocol) server that lets
// AI assistants generate PDFs from blueprint schemas.
//
// # Installation
//
//	go install github.com/lvillar/blueprint/cmd/blueprint-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "blueprint": {
//	      "command": "blueprint-mcp"
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - generate_pdf: Generate a PDF from a schema and data
//   - validate_schema: Check a schema without rendering it
//   - list_formats: List the named page formats
//
// # Available Resources
//
//   - blueprint://formats : Page formats as JSON
//   - blueprint://schema-reference : The schema document format
//
// Set BLUEPRINT_MCP_DEBUG=1 to log requests to stderr.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lvillar/blueprint"
	"github.com/lvillar/blueprint/mcp"
)

func main() {
	if os.Getenv("BLUEPRINT_MCP_DEBUG") != "" {
		blueprint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	server := mcp.NewServer()

	mcp.RegisterDefaultTools(server)
	mcp.RegisterDefaultResources(server)

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "blueprint-mcp: %v\n", err)
		os.Exit(1)
	}
}
