package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/grid-reader/internal/binairo"
	"github.com/ironsheep/grid-reader/internal/config"
	"github.com/ironsheep/grid-reader/internal/detection"
	"github.com/ironsheep/grid-reader/internal/gridfile"
	"github.com/ironsheep/grid-reader/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "grid_detect", "grid_crop").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Printf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Board Reading
	case "grid_detect":
		return s.handleGridDetect(args)
	case "grid_solve":
		return s.handleGridSolve(args)

	// Image Inspection
	case "grid_dimensions":
		return s.handleGridDimensions(args)
	case "grid_crop":
		return s.handleGridCrop(args)
	case "grid_sample_color":
		return s.handleGridSampleColor(args)
	case "grid_config":
		return s.cfg, nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Board Reading Handlers ===

type gridDetectArgs struct {
	Path    string       `json:"path"`
	Crop    *config.Rect `json:"crop,omitempty"`
	Overlay bool         `json:"overlay"`
	Preview bool         `json:"preview"`
	Output  string       `json:"output"`
}

// gridDetectResult is the grid_detect response.
type gridDetectResult struct {
	Size    int                 `json:"size"`
	Square  bool                `json:"square"`
	Codes   [][]int             `json:"codes"`
	Tiles   []detection.Tile    `json:"tiles"`
	Skipped int                 `json:"skipped"`
	Written string              `json:"written,omitempty"`
	Overlay *imaging.CropResult `json:"overlay,omitempty"`
	Preview *imaging.CropResult `json:"preview,omitempty"`
}

func (s *Server) handleGridDetect(args json.RawMessage) (interface{}, error) {
	var a gridDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	crop := s.cfg.Crop
	if a.Crop != nil {
		crop = *a.Crop
	}
	out, err := s.reader.ReadRegion(img, crop)
	if err != nil {
		return nil, err
	}

	res := &gridDetectResult{
		Size:    out.Result.Grid.Size(),
		Square:  out.Result.Grid.Square(),
		Codes:   out.Result.Grid.Codes(),
		Tiles:   out.Result.Tiles,
		Skipped: out.Result.Skipped,
	}

	if a.Output != "" {
		if err := gridfile.WriteFile(a.Output, res.Codes); err != nil {
			return nil, err
		}
		res.Written = a.Output
	}
	if a.Overlay {
		if res.Overlay, err = imaging.EncodePNG(out.Overlay()); err != nil {
			return nil, err
		}
	}
	if a.Preview {
		if res.Preview, err = imaging.EncodePNG(out.Preview(24)); err != nil {
			return nil, err
		}
	}
	return res, nil
}

type gridSolveArgs struct {
	Codes [][]int `json:"codes"`
	Path  string  `json:"path"`
}

// gridSolveResult is the grid_solve response.
type gridSolveResult struct {
	Solved bool    `json:"solved"`
	Codes  [][]int `json:"codes"`
}

func (s *Server) handleGridSolve(args json.RawMessage) (interface{}, error) {
	var a gridSolveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	codes := a.Codes
	if codes == nil {
		if a.Path == "" {
			return nil, errors.New("either codes or path is required")
		}
		var err error
		if codes, err = gridfile.Read(a.Path); err != nil {
			return nil, err
		}
	}

	board, err := binairo.FromCodes(codes)
	if err != nil {
		return nil, err
	}
	solved := board.Solve()
	return &gridSolveResult{Solved: solved, Codes: board.Codes()}, nil
}

// === Image Inspection Handlers ===

type gridPathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleGridDimensions(args json.RawMessage) (interface{}, error) {
	var a gridPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type gridCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleGridCrop(args json.RawMessage) (interface{}, error) {
	var a gridCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type gridSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// gridSampleResult is the grid_sample_color response.
type gridSampleResult struct {
	*imaging.ColorResult
	Label string `json:"label"`
	Code  *int   `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleGridSampleColor(args json.RawMessage) (interface{}, error) {
	var a gridSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	sample, err := imaging.SampleColor(img, a.X, a.Y)
	if err != nil {
		return nil, err
	}

	res := &gridSampleResult{ColorResult: sample}
	label, err := detection.Classify(detection.SampleBGR(img, a.X, a.Y))
	if err != nil {
		res.Label = "unrecognized"
		res.Error = err.Error()
		return res, nil
	}
	code := label.Code()
	res.Label = label.String()
	res.Code = &code
	return res, nil
}
