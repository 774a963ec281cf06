package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pickerSchema describes one seed's color picker in the image_fill arguments.
var pickerSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"type": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"solid", "negative", "mosaic", "soft_border", "blur"},
			"description": "How filled pixels are colored",
		},
		"color": map[string]interface{}{
			"type":        "string",
			"description": "Hex color for the solid picker, e.g. \"#FF8800\"",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Tile edge length in pixels for the mosaic picker",
		},
		"radius": map[string]interface{}{
			"type":        "number",
			"description": "Disk radius for soft_border (whole pixels) or Gaussian radius for blur",
		},
		"tolerance": map[string]interface{}{
			"type":        "number",
			"description": "soft_border only: similarity threshold for averaged pixels. Defaults to the job tolerance",
		},
	},
	"required": []string{"type"},
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent fills.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel as hex, RGBA and HSLA. Use the HSLA value to choose a seed and a fill tolerance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		{
			Name:        "image_seed_preview",
			Description: "Render the image with a coordinate grid and numbered seed markers, returned as base64 PNG, plus the color under each seed. Use it to check seed positions before running image_fill.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"seeds": map[string]interface{}{
						"type":        "array",
						"description": "Seed positions to mark",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "integer"},
								"y": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"x", "y"},
						},
					},
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Grid spacing in source pixels; 0 disables the grid. Default 50",
						"default":     50,
					},
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Label grid intersections with coordinates. Default true",
						"default":     true,
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Nearest-neighbor zoom factor, 1 to 16. Default 1",
						"default":     1,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as hex with optional alpha. Default #FF000080",
						"default":     "#FF000080",
					},
					"marker_color": map[string]interface{}{
						"type":        "string",
						"description": "Seed marker color as hex. Default #00FFFF",
						"default":     "#00FFFF",
					},
				},
				"required": []string{"path"},
			},
		},

		// Fill Operations
		{
			Name:        "image_fill",
			Description: "Flood fill an image from one or more seeds. Each seed grows a region of similar pixels and repaints it with its own color picker. Optionally writes the final image, an animated GIF of the fill and numbered PNG frames.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"bfs", "dfs"},
						"description": "Traversal order. Affects the animation only. Default bfs",
						"default":     "bfs",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Maximum HSL distance from the seed color for a pixel to join the region. 0 matches exact colors only",
					},
					"frame_freq": map[string]interface{}{
						"type":        "integer",
						"description": "Record an animation frame every N painted pixels. Default 100",
						"default":     100,
					},
					"seeds": map[string]interface{}{
						"type":        "array",
						"description": "Seeds in processing order; earlier seeds claim shared pixels",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":      map[string]interface{}{"type": "integer"},
								"y":      map[string]interface{}{"type": "integer"},
								"picker": pickerSchema,
							},
							"required": []string{"x", "y", "picker"},
						},
					},
					"output": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"final": map[string]interface{}{
								"type":        "string",
								"description": "Path for the finished image; the extension selects the format",
							},
							"animation": map[string]interface{}{
								"type":        "string",
								"description": "Path for an animated .gif of the fill",
							},
							"frames_dir": map[string]interface{}{
								"type":        "string",
								"description": "Directory for numbered PNG frames",
							},
							"workers": map[string]interface{}{
								"type":        "integer",
								"description": "Concurrent frame writers. Default NumCPU",
							},
							"delay": map[string]interface{}{
								"type":        "integer",
								"description": "Animation frame delay in 1/100 s. Default 4",
							},
							"final_delay": map[string]interface{}{
								"type":        "integer",
								"description": "How long the last animation frame is held in 1/100 s. Default 200",
							},
							"inline_final": map[string]interface{}{
								"type":        "boolean",
								"description": "Return the finished image as base64 PNG",
							},
						},
					},
				},
				"required": []string{"path", "seeds"},
			},
		},
		{
			Name:        "image_fill_job",
			Description: "Run a fill job described by a YAML file. Relative paths in the file resolve against the file's directory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"job_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the YAML job file",
					},
				},
				"required": []string{"job_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return s.result(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
