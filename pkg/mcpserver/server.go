// Package mcpserver exposes the chord engine as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"github.com/james-see/jazzimpro/pkg/converter"
	"github.com/mark3labs/mcp-go/server"
)

// New creates the MCP server with every chord tool registered.
func New(version string, conv *converter.Converter) *server.MCPServer {
	s := server.NewMCPServer(
		"jazzimpro",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	notes := NewChordNotesTool(conv)
	s.AddTool(notes.Definition(), notes.Handle)

	impro := NewImproviseTool()
	s.AddTool(impro.Definition(), impro.Handle)

	qualities := NewQualitiesTool()
	s.AddTool(qualities.Definition(), qualities.Handle)

	return s
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func ServeStdio(version string, conv *converter.Converter) error {
	return server.ServeStdio(New(version, conv))
}
