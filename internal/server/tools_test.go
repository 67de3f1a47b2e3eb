package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"grid_detect",
		"grid_solve",
		"grid_dimensions",
		"grid_crop",
		"grid_sample_color",
		"grid_config",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	// Check all expected tools exist
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			// Name should not be empty
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}

			// Description should not be empty
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			// InputSchema should exist
			if tool.InputSchema == nil {
				t.Error("Tool InputSchema is nil")
			}

			// InputSchema should be an object type
			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			// InputSchema should have properties
			props, ok := tool.InputSchema["properties"]
			if !ok {
				t.Error("InputSchema missing 'properties' field")
			}
			if props == nil {
				t.Error("InputSchema properties is nil")
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	// Tools that read a photo require a 'path' parameter
	toolsRequiringPath := []string{
		"grid_detect",
		"grid_dimensions",
		"grid_crop",
		"grid_sample_color",
	}

	tools := GetToolDefinitions()
	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range toolsRequiringPath {
		tool, ok := toolMap[name]
		if !ok {
			continue // Skip if tool not found
		}

		t.Run(name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"]
			if !ok {
				t.Error("InputSchema missing 'required' field")
				return
			}

			requiredList, ok := required.([]string)
			if !ok {
				t.Error("'required' should be a string slice")
				return
			}

			hasPath := false
			for _, r := range requiredList {
				if r == "path" {
					hasPath = true
					break
				}
			}

			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_CropCoordinates(t *testing.T) {
	tools := GetToolDefinitions()

	var cropTool Tool
	for _, tool := range tools {
		if tool.Name == "grid_crop" {
			cropTool = tool
			break
		}
	}

	if cropTool.Name == "" {
		t.Fatal("grid_crop tool not found")
	}

	required, ok := cropTool.InputSchema["required"].([]string)
	if !ok {
		t.Fatal("required should be a string slice")
	}

	// grid_crop requires path, x1, y1, x2, y2
	expectedRequired := map[string]bool{
		"path": true,
		"x1":   true,
		"y1":   true,
		"x2":   true,
		"y2":   true,
	}

	for _, r := range required {
		if expectedRequired[r] {
			delete(expectedRequired, r)
		}
	}

	for missing := range expectedRequired {
		t.Errorf("grid_crop should require '%s' parameter", missing)
	}
}

func TestToolDefinitions_DetectCrop(t *testing.T) {
	var tool Tool
	for _, tt := range GetToolDefinitions() {
		if tt.Name == "grid_detect" {
			tool = tt
			break
		}
	}

	if tool.Name == "" {
		t.Fatal("grid_detect tool not found")
	}

	props, ok := tool.InputSchema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("properties should be a map")
	}

	crop, ok := props["crop"].(map[string]interface{})
	if !ok {
		t.Fatal("crop property should exist and be a map")
	}

	required, ok := crop["required"].([]string)
	if !ok || len(required) != 4 {
		t.Errorf("crop should require x1, y1, x2, y2, got %v", crop["required"])
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	tools := GetToolDefinitions()

	// Tools with optional parameters that should have defaults
	toolDefaults := map[string]map[string]interface{}{
		"grid_crop":   {"scale": 1.0},
		"grid_detect": {"overlay": false, "preview": false},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for toolName, expectedDefaults := range toolDefaults {
		tool, ok := toolMap[toolName]
		if !ok {
			t.Errorf("Tool %s not found", toolName)
			continue
		}

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expectedDefault := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}

			actualDefault, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}

			// Compare defaults (handle type differences)
			switch expected := expectedDefault.(type) {
			case float64:
				actual, ok := actualDefault.(float64)
				if !ok || actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			case int:
				// JSON numbers are float64
				actual, ok := actualDefault.(int)
				if !ok {
					actualFloat, ok := actualDefault.(float64)
					if !ok || int(actualFloat) != expected {
						t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
					}
				} else if actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			case string:
				actual, ok := actualDefault.(string)
				if !ok || actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			case bool:
				actual, ok := actualDefault.(bool)
				if !ok || actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	tools, ok := result["tools"]
	if !ok {
		t.Fatal("Result should contain 'tools' key")
	}

	toolsList, ok := tools.([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	// Should match GetToolDefinitions
	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}

func TestToolStruct(t *testing.T) {
	tool := Tool{
		Name:        "test_tool",
		Description: "A test tool",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"param1": map[string]interface{}{
					"type":        "string",
					"description": "A test parameter",
				},
			},
			"required": []string{"param1"},
		},
	}

	if tool.Name != "test_tool" {
		t.Errorf("Name: got %s, want test_tool", tool.Name)
	}
	if tool.Description != "A test tool" {
		t.Errorf("Description: got %s, want 'A test tool'", tool.Description)
	}
	if tool.InputSchema == nil {
		t.Error("InputSchema should not be nil")
	}
}
