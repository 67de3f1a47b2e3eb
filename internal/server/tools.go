package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema of the image path argument shared by most tools.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the board photo",
}

// rectSchema describes a crop rectangle argument.
func rectSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Board Reading
		{
			Name:        "grid_detect",
			Description: "Read the tile grid from a board photo. Returns one row of color codes per grid row (gray -1, blue 0, red 1) plus the detected tiles.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"crop": rectSchema("Board region of the photo, (x1,y1) inclusive, (x2,y2) exclusive. Defaults to the configured crop"),
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the board with tile outlines and (row,col) labels as base64 PNG",
						"default":     false,
					},
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Include a swatch rendering of the decoded grid as base64 PNG",
						"default":     false,
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the grid in result.txt format",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "grid_solve",
			Description: "Solve a Binairo puzzle. Takes the grid either as codes or as a result.txt path; empty cells are -1.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"codes": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "integer", "enum": []int{-1, 0, 1}},
						},
						"description": "Square grid of cell codes",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Path to a result.txt file, used when codes is omitted",
					},
				},
			},
		},

		// Image Inspection
		{
			Name:        "grid_dimensions",
			Description: "Get the width and height of a photo, after EXIF orientation is applied.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "grid_crop",
			Description: "Crop a rectangular region from a photo and return it as base64-encoded PNG. Use this to find or check the board crop rectangle.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 0.5 to halve the size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "grid_sample_color",
			Description: "Get the color at a pixel and the tile label it classifies as (gray, blue, red), or why it is unrecognized.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "grid_config",
			Description: "Return the active reader configuration (crop rectangle, detection settings, tracer, output path).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
