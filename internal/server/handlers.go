package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/image-fill-mcp/internal/config"
	"github.com/ironsheep/image-fill-mcp/internal/imaging"
	"github.com/ironsheep/image-fill-mcp/internal/runner"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_fill").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	if res, ok := result.(*runner.Result); ok {
		s.logFill(params.Name, res)
	}

	return s.result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging or runner function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_seed_preview":
		return s.handleImageSeedPreview(args)

	// Fill Operations
	case "image_fill":
		return s.handleImageFill(ctx, args)
	case "image_fill_job":
		return s.handleImageFillJob(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is omitted from the response.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSeedPreviewArgs struct {
	Path            string `json:"path"`
	GridSpacing     *int   `json:"grid_spacing"`
	ShowCoordinates *bool  `json:"show_coordinates"`
	Scale           int    `json:"scale"`
	GridColor       string `json:"grid_color"`
	MarkerColor     string `json:"marker_color"`
	Seeds           []struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"seeds"`
}

func (s *Server) handleImageSeedPreview(args json.RawMessage) (interface{}, error) {
	var a imageSeedPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := imaging.PreviewOptions{
		GridSpacing:     50,
		ShowCoordinates: true,
		Scale:           a.Scale,
		GridColor:       a.GridColor,
		MarkerColor:     a.MarkerColor,
	}
	if a.GridSpacing != nil {
		opts.GridSpacing = *a.GridSpacing
	}
	if a.ShowCoordinates != nil {
		opts.ShowCoordinates = *a.ShowCoordinates
	}
	for _, p := range a.Seeds {
		opts.Seeds = append(opts.Seeds, image.Pt(p.X, p.Y))
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SeedPreview(img, opts)
}

// === Fill Handlers ===

// handleImageFill runs a job given inline. The arguments use the same shape
// as a YAML job file, with the source image under "path".
func (s *Server) handleImageFill(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var job config.Job
	if err := json.Unmarshal(args, &job); err != nil {
		return nil, err
	}
	return s.runner.Run(ctx, &job)
}

type imageFillJobArgs struct {
	JobPath string `json:"job_path"`
}

func (s *Server) handleImageFillJob(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageFillJobArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.JobPath) == "" {
		return nil, fmt.Errorf("job_path is required")
	}
	job, err := config.Load(a.JobPath)
	if err != nil {
		return nil, err
	}
	return s.runner.Run(ctx, job)
}
