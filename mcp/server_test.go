package mcp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sendRequest(t *testing.T, s *Server, method string, id int, params any) jsonrpcResponse {
	t.Helper()

	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}

	reqBytes, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	reqBytes = append(reqBytes, '\n')

	var output bytes.Buffer
	s.input = bytes.NewReader(reqBytes)
	s.output = &output

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var resp jsonrpcResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling response %q: %v", output.String(), err)
	}
	return resp
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) ToolResult {
	t.Helper()
	resp := sendRequest(t, s, "tools/call", 7, map[string]any{"name": name, "arguments": args})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	raw, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatal(err)
	}
	var result ToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decoding tool result: %v", err)
	}
	return result
}

var helloSchema = map[string]any{
	"shapes": []any{
		map[string]any{"type": "box", "x": "center", "y": 20, "width": 100, "height": 100, "backgroundColor": "#3996e6"},
	},
	"text": []any{
		map[string]any{"x": "center", "y": 160, "text": "Hello {{ .name }}!", "textAlign": "center"},
	},
}

func TestServerInitialize(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultTools(s)

	resp := sendRequest(t, s, "initialize", 1, map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "1.0"},
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}

	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatal("result is not a map")
	}

	if result["protocolVersion"] != "2024-11-05" {
		t.Fatalf("unexpected protocol version: %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]any)
	if !ok {
		t.Fatal("missing serverInfo")
	}
	if serverInfo["name"] != "blueprint-mcp" {
		t.Fatalf("unexpected server name: %v", serverInfo["name"])
	}
}

func TestServerToolsList(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultTools(s)

	resp := sendRequest(t, s, "tools/list", 2, nil)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}

	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatal("result is not a map")
	}

	tools, ok := result["tools"].([]any)
	if !ok {
		t.Fatal("tools is not an array")
	}

	var names []string
	for _, tool := range tools {
		tm, ok := tool.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := tm["name"].(string); ok {
			names = append(names, name)
		}
	}

	want := []string{"generate_pdf", "list_formats", "validate_schema"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("tools mismatch (-want +got):\n%s", diff)
	}
}

func TestServerResourcesList(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultResources(s)

	resp := sendRequest(t, s, "resources/list", 3, nil)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}

	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatal("result is not a map")
	}

	resources, ok := result["resources"].([]any)
	if !ok {
		t.Fatal("resources is not an array")
	}

	if len(resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resources))
	}
}

func TestServerResourcesRead(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultResources(s)

	resp := sendRequest(t, s, "resources/read", 3, map[string]any{"uri": "blueprint://formats"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	raw, _ := json.Marshal(resp.Result)
	if !strings.Contains(string(raw), `\"name\": \"letter\"`) {
		t.Fatalf("formats resource missing letter: %s", raw)
	}

	resp = sendRequest(t, s, "resources/read", 4, map[string]any{"uri": "blueprint://nope"})
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Fatalf("expected invalid params error, got %+v", resp.Error)
	}
}

func TestServerPing(t *testing.T) {
	s := NewServerWithIO(nil, nil)

	resp := sendRequest(t, s, "ping", 4, nil)

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
}

func TestServerUnknownMethod(t *testing.T) {
	s := NewServerWithIO(nil, nil)

	resp := sendRequest(t, s, "nonexistent/method", 5, nil)

	if resp.Error == nil {
		t.Fatal("expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Fatalf("expected error code -32601, got %d", resp.Error.Code)
	}
}

func TestServerUnknownTool(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultTools(s)

	resp := sendRequest(t, s, "tools/call", 6, map[string]any{
		"name":      "nonexistent_tool",
		"arguments": map[string]any{},
	})

	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestServerGeneratePDFTool(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultTools(s)

	result := callTool(t, s, "generate_pdf", map[string]any{
		"schema":      helloSchema,
		"data":        map[string]any{"name": "MCP"},
		"format":      "letter",
		"orientation": "landscape",
	})

	if result.IsError || len(result.Content) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !strings.Contains(result.Content[0].Text, "PDF generated successfully") {
		t.Fatalf("unexpected text: %s", result.Content[0].Text)
	}
	pdf, err := base64.StdEncoding.DecodeString(result.Content[1].Data)
	if err != nil {
		t.Fatalf("decoding base64: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) || result.Content[1].MIMEType != "application/pdf" {
		t.Fatalf("resource block is not a PDF (%s)", result.Content[1].MIMEType)
	}
}

func TestServerGeneratePDFToFile(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultTools(s)
	path := filepath.Join(t.TempDir(), "hello.pdf")

	result := callTool(t, s, "generate_pdf", map[string]any{
		"schema":     map[string]any{"schema": helloSchema, "data": map[string]any{"name": "file"}},
		"format":     "200x300",
		"outputPath": path,
	})
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result)
	}
	pdf, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
}

func TestServerGeneratePDFErrors(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultTools(s)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing schema", map[string]any{}, "missing 'schema'"},
		{"invalid schema", map[string]any{"schema": map[string]any{"pages": 1}}, "unknown key"},
		{"bad format", map[string]any{"schema": helloSchema, "format": "B5"}, "unrecognized page format"},
		{"bad orientation", map[string]any{"schema": helloSchema, "orientation": "up"}, "unrecognized orientation"},
		{"missing data", map[string]any{"schema": helloSchema}, "rendering PDF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, s, "generate_pdf", tt.args)
			if !result.IsError || !strings.Contains(result.Content[0].Text, tt.want) {
				t.Fatalf("expected error mentioning %q, got %+v", tt.want, result)
			}
		})
	}
}

func TestServerValidateSchemaTool(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultTools(s)

	result := callTool(t, s, "validate_schema", map[string]any{"schema": helloSchema})
	if result.IsError || result.Content[0].Text != "Schema is valid." {
		t.Fatalf("unexpected result: %+v", result)
	}

	result = callTool(t, s, "validate_schema", map[string]any{"schema": map[string]any{
		"text": []any{map[string]any{"text": "{{ .broken "}},
	}})
	if !result.IsError {
		t.Fatalf("expected an error result, got %+v", result)
	}
}

func TestServerListFormatsTool(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultTools(s)

	result := callTool(t, s, "list_formats", nil)
	if !strings.Contains(result.Content[0].Text, "A4: 595.28 x 841.89") {
		t.Fatalf("unexpected result: %s", result.Content[0].Text)
	}
}

func TestServerMultipleRequests(t *testing.T) {
	requests := []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","method":"notifications/cancelled"}`,
		`{"jsonrpc":"2.0","id":4,"method":"ping"}`,
	}

	input := strings.Join(requests, "\n") + "\n"
	var output bytes.Buffer

	s := NewServerWithIO(strings.NewReader(input), &output)
	RegisterDefaultTools(s)
	RegisterDefaultResources(s)

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// notifications get no response
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 responses, got %d: %s", len(lines), output.String())
	}

	for i, line := range lines {
		var resp jsonrpcResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("response %d: unmarshal error: %v\nline: %s", i, err, line)
		}
		if resp.Error != nil {
			t.Errorf("response %d: unexpected error: %s", i, resp.Error.Message)
		}
	}
}

func TestServerParseError(t *testing.T) {
	var output bytes.Buffer
	s := NewServerWithIO(strings.NewReader("{not json\n"), &output)
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	var resp jsonrpcResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != codeParseError {
		t.Fatalf("expected parse error, got %+v", resp)
	}
}

func TestToolAddTool(t *testing.T) {
	s := NewServerWithIO(nil, nil)

	s.AddTool(Tool{
		Name:        "custom_tool",
		Description: "A custom test tool",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			return textResult("custom result"), nil
		},
	})

	result := callTool(t, s, "custom_tool", map[string]any{})
	if result.Content[0].Text != "custom result" {
		t.Fatalf("unexpected result: %+v", result)
	}
}
