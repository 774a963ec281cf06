// Package server implements the MCP (Model Context Protocol) server for
// multi-seed flood fill.
//
// This package provides a JSON-RPC 2.0 server that exposes the fill engine
// through the MCP protocol, so an MCP client can inspect an image, choose
// seeds from sampled colors and render a fill animation in one session.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout, one per request
//
// Lines that are not valid JSON are answered with a -32700 parse error and
// a null ID. Notifications from the client (notifications/initialized,
// notifications/cancelled) get no reply. After each completed fill the server
// sends a notifications/message entry summarizing the pixels painted and the
// frames recorded, ahead of the tools/call response.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel as hex, RGBA and HSLA
//   - image_seed_preview: Coordinate grid and seed markers for choosing seeds
//
// Fill Operations:
//   - image_fill: Run a fill job given as tool arguments
//   - image_fill_job: Run a fill job from a YAML file
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images shared by every
// tool. A fill always works on a private raster converted from the cached
// image, so repeated fills of the same file start from the same pixels.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "invalid fill job: at least one seed is required"
//
// # Usage
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := server.New().Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
//	    log.Fatal(err)
//	}
//
// Cancelling the context aborts a running fill and ends the session.
package server
