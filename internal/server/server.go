package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/image-fill-mcp/internal/imaging"
	"github.com/ironsheep/image-fill-mcp/internal/runner"
)

// Version is reported in the initialize handshake. main overrides it with
// the build version.
var Version = "0.1.0"

const protocolVersion = "2024-11-05"

// JSON-RPC error codes used by the server.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// maxLineBytes bounds a single request line. Inline fill jobs with many
// seeds are the largest requests.
const maxLineBytes = 4 * 1024 * 1024

// serverInstructions is returned on initialize to describe the intended
// workflow to the client.
const serverInstructions = "Inspect an image with image_load and image_sample_color, " +
	"check seed positions with image_seed_preview, then run image_fill " +
	"(inline job) or image_fill_job (YAML file). Fills never modify the source file."

// Server serves fill jobs and their supporting image tools over MCP.
//
// Requests are handled one at a time in arrival order, so a fill job holds
// the connection until its outputs are written.
type Server struct {
	cache  *imaging.ImageCache
	runner *runner.Runner

	// notify sends a notification to the connected client. It is set for
	// the duration of Serve and is a no-op otherwise.
	notify func(MCPNotification)
}

// MCPRequest is an incoming JSON-RPC message. Notifications carry no ID.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse is an outgoing JSON-RPC response.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError is the error member of a response. Data holds the Go error text.
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification is an outgoing message without an ID. The server uses it
// for notifications/message log entries when a fill job completes.
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates a server whose tools share one image cache.
func New() *Server {
	cache := imaging.NewImageCache()
	return &Server{
		cache:  cache,
		runner: runner.New(cache),
		notify: func(MCPNotification) {},
	}
}

// SetVerbose enables progress logging for fill jobs.
func (s *Server) SetVerbose(v bool) {
	s.runner.SetVerbose(v)
}

// Run serves MCP on stdin/stdout until stdin closes or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes one
// response line per request to w. Lines that are not valid JSON get a parse
// error response with a null ID. Cancelling ctx aborts the running fill and
// stops the loop before the next request.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	encoder := json.NewEncoder(w)

	s.notify = func(n MCPNotification) {
		if err := encoder.Encode(n); err != nil {
			log.Printf("Failed to send %s: %v", n.Method, err)
		}
	}
	defer func() { s.notify = func(MCPNotification) {} }()

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			resp = s.errorResponse(nil, codeParseError, "Parse error", err.Error())
		} else {
			resp = s.handleRequest(ctx, &req)
		}

		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized", "notifications/cancelled":
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return s.result(req.ID, map[string]interface{}{})
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return s.result(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools":   map[string]interface{}{},
			"logging": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "image-fill-mcp",
			"version": Version,
		},
		"instructions": serverInstructions,
	})
}

// logFill reports a finished fill job to the client.
func (s *Server) logFill(tool string, res *runner.Result) {
	s.notify(MCPNotification{
		JSONRPC: "2.0",
		Method:  "notifications/message",
		Params: map[string]interface{}{
			"level":  "info",
			"logger": "image-fill",
			"data": fmt.Sprintf("%s: %dx%d %s fill from %d seeds painted %d pixels in %d frames",
				tool, res.Width, res.Height, res.Mode, res.Seeds, res.PixelsFilled, res.FrameCount),
		},
	})
}

func (s *Server) result(id interface{}, v interface{}) *MCPResponse {
	return &MCPResponse{JSONRPC: "2.0", ID: id, Result: v}
}
