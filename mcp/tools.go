package mcp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lvillar/blueprint"
	"github.com/lvillar/blueprint/schemafile"
)

// RegisterDefaultTools adds all built-in tools to the server.
func RegisterDefaultTools(s *Server) {
	s.AddTool(generatePDFTool())
	s.AddTool(validateSchemaTool())
	s.AddTool(listFormatsTool())
}

func generatePDFTool() Tool {
	return Tool{
		Name: "generate_pdf",
		Description: "Generate a PDF from a blueprint schema. The schema has text, images, shapes, loops and options; " +
			"positions are numbers, percentages (\"50%\") or \"center\". String values may contain Go template actions " +
			"evaluated against data. Returns the PDF as base64 unless outputPath is given.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"schema": map[string]any{
					"type":        "object",
					"description": "Blueprint schema document (see the blueprint://schema-reference resource)",
				},
				"data": map[string]any{
					"description": "Data the schema's templates are evaluated against",
				},
				"format": map[string]any{
					"type":        "string",
					"description": "A2, A3, A4, A5, letter, card or WIDTHxHEIGHT in points (default A4)",
				},
				"orientation": map[string]any{
					"type":        "string",
					"enum":        []string{"portrait", "landscape"},
					"description": "Page orientation (default portrait)",
				},
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
			"required": []string{"schema"},
		},
		Handler: handleGeneratePDF,
	}
}

func handleGeneratePDF(args map[string]any) (ToolResult, error) {
	src, err := schemaArg(args)
	if err != nil {
		return ToolResult{}, err
	}

	data, _ := src.DefaultData()
	if d, ok := args["data"]; ok {
		data = d
	}

	opts, err := pageOptions(args)
	if err != nil {
		return ToolResult{}, err
	}
	bp, err := blueprint.New(src.Schema(), data, opts...)
	if err != nil {
		return ToolResult{}, err
	}

	var buf bytes.Buffer
	if err := bp.Render(&buf); err != nil {
		return ToolResult{}, fmt.Errorf("rendering PDF: %w", err)
	}

	if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
		if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return textResult(fmt.Sprintf("PDF generated successfully: %s (%d bytes)", outputPath, buf.Len())), nil
	}

	return ToolResult{
		Content: []ContentBlock{
			{
				Type: "text",
				Text: fmt.Sprintf("PDF generated successfully (%d bytes). Base64 data follows.", buf.Len()),
			},
			{
				Type:     "resource",
				MIMEType: blueprint.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
			},
		},
	}, nil
}

func validateSchemaTool() Tool {
	return Tool{
		Name:        "validate_schema",
		Description: "Check a blueprint schema document for structural and template syntax errors without rendering it.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"schema": map[string]any{
					"type":        "object",
					"description": "Blueprint schema document",
				},
			},
			"required": []string{"schema"},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			if _, err := schemaArg(args); err != nil {
				return ToolResult{}, err
			}
			return textResult("Schema is valid."), nil
		},
	}
}

func listFormatsTool() Tool {
	return Tool{
		Name:        "list_formats",
		Description: "List the named page formats and their portrait dimensions in points.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(map[string]any) (ToolResult, error) {
			var b strings.Builder
			for _, f := range blueprint.Formats() {
				fmt.Fprintf(&b, "%s: %g x %g\n", f.Name, f.Width, f.Height)
			}
			return textResult(b.String()), nil
		},
	}
}

func schemaArg(args map[string]any) (*schemafile.Source, error) {
	schema, ok := args["schema"]
	if !ok {
		return nil, fmt.Errorf("missing 'schema' argument")
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}
	return schemafile.Parse(raw)
}

func pageOptions(args map[string]any) ([]blueprint.Option, error) {
	var opts []blueprint.Option
	if name, ok := args["format"].(string); ok && name != "" {
		f, err := blueprint.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if f.Name != "" {
			opts = append(opts, blueprint.WithFormat(f.Name))
		} else {
			opts = append(opts, blueprint.WithPageSizeCustom(f.Width, f.Height))
		}
	}
	if o, ok := args["orientation"].(string); ok {
		orientation, err := blueprint.ParseOrientation(o)
		if err != nil {
			return nil, err
		}
		opts = append(opts, blueprint.WithOrientation(orientation))
	}
	return opts, nil
}

func textResult(text string) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: text}}}
}
