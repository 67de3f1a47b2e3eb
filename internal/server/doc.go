// Package server implements an MCP (Model Context Protocol) server that reads
// tile grids from board photos.
//
// The server exposes the same pipeline as the gridreader command line
// (crop, detect, write result.txt) plus the Binairo solver and a few
// inspection tools that help pick the crop rectangle for a new camera setup.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Board Reading:
//   - grid_detect: Read the grid codes, optionally writing result.txt and
//     returning the debug overlay or a swatch preview
//   - grid_solve: Solve a Binairo puzzle given as codes or a result file
//
// Image Inspection:
//   - grid_dimensions: Get width and height
//   - grid_crop: Extract a rectangular region
//   - grid_sample_color: Get the color at a pixel and its tile label
//   - grid_config: Show the active configuration
//
// # Image Caching
//
// Photos are cached by path and reused across tool calls. The cache persists
// for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv, err := server.New(cfg, version, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
