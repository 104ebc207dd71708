package mcp

import (
	"encoding/json"

	"github.com/lvillar/blueprint"
)

// RegisterDefaultResources adds the built-in resources to the server.
func RegisterDefaultResources(s *Server) {
	s.AddResource(Resource{
		URI:         "blueprint://formats",
		Name:        "Page Formats",
		Description: "Named page formats with their portrait width and height in points.",
		MIMEType:    "application/json",
		Handler:     handleFormatsResource,
	})

	s.AddResource(Resource{
		URI:         "blueprint://schema-reference",
		Name:        "Schema Reference",
		Description: "The schema document format accepted by generate_pdf, with an example.",
		MIMEType:    "text/markdown",
		Handler:     handleSchemaReference,
	})
}

func handleFormatsResource(uri string) ([]ResourceContent, error) {
	jsonBytes, err := json.MarshalIndent(blueprint.Formats(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(jsonBytes),
	}}, nil
}

func handleSchemaReference(uri string) ([]ResourceContent, error) {
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "text/markdown",
		Text:     schemaReference,
	}}, nil
}

const schemaReference = "# Blueprint schema\n\n" +
	"A schema is a JSON object with optional keys `text`, `images`, `shapes`, `loops` and `options`.\n" +
	"It may be wrapped as `{\"schema\": {...}, \"data\": {...}}` to carry default data.\n\n" +
	"Coordinates are in points from the top-left corner of the document. `y` grows across pages:\n" +
	"an element at `y = pageHeight + 10` is drawn 10pt below the top of page 2.\n\n" +
	"- Positions (`x`, `y`): a number, a percentage string (`\"25%\"`) or `\"center\"`.\n" +
	"- Sizes (`width`, `height`): a number or a percentage string.\n" +
	"- `shapes`: `{\"type\": \"box\", x, y, width, height, borderRadius, backgroundColor, borderWidth, borderColor}`\n" +
	"  or `{\"type\": \"circle\", x, y, radius, backgroundColor, borderWidth, borderColor}`.\n" +
	"- `text`: `{x, y, text, fontSize, fontFamily, fontStyle, fontWeight, color, textAlign}`; y is the baseline.\n" +
	"- `images`: `{x, y, width, height, src, rotation, type}`; `type: \"background\"` draws below shapes.\n" +
	"  `src` is a file path, a data URI or base64. `barcode: {kind, value}` (qr, code128, datamatrix, pdf417)\n" +
	"  replaces `src`.\n" +
	"- `loops`: `{\"data\": \"rows\", \"template\": {text, images, shapes}}`; inside the template `.row`,\n" +
	"  `.index` and `.data` are available.\n" +
	"- `options`: `{fonts: [{family, src, weight, style}], title, author, subject}`.\n\n" +
	"Strings containing `{{ }}` are Go templates evaluated against the data; sprig functions are available.\n" +
	"Template output is text. Positions and sizes accept numeric text, and the output of a template in\n" +
	"`radius`, `fontSize`, `borderRadius`, `borderWidth` or `rotation` is converted to a number:\n\n" +
	"```json\n" +
	"{\n" +
	"  \"shapes\": [{\"type\": \"box\", \"x\": \"center\", \"y\": 20, \"width\": 100, \"height\": 100, \"backgroundColor\": \"#3996e6\"}],\n" +
	"  \"text\": [{\"x\": \"center\", \"y\": 160, \"text\": \"Hello {{ .user.name }}!\", \"textAlign\": \"center\", \"fontSize\": 24}],\n" +
	"  \"loops\": [{\"data\": \"rows\", \"template\": {\"text\": [{\"x\": 30, \"y\": \"{{ add 290 (mul .index 30) }}\", \"text\": \"{{ .row.value }}\"}]}}]\n" +
	"}\n" +
	"```\n"
