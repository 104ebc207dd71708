package blueprint

import (
	"encoding/json"
	"strconv"
)

// Schema produces the fragment to render from the generation's data.
// It is called exactly once per generation and must not retain the
// returned fragment.
type Schema func(data any) (*Fragment, error)

// Static returns a Schema that ignores its data and always yields f.
func Static(f *Fragment) Schema {
	return func(any) (*Fragment, error) { return f, nil }
}

// Fragment is the set of elements to render. Nil entries in any of the
// slices are skipped, which lets schemas include elements conditionally.
//
// Loops and Options are only honored on the fragment returned by a Schema;
// they are ignored on fragments produced by loop templates.
type Fragment struct {
	Text    []*Text  `json:"text,omitempty"`
	Images  []*Image `json:"images,omitempty"`
	Shapes  []*Shape `json:"shapes,omitempty"`
	Loops   []*Loop  `json:"-"`
	Options *Options `json:"options,omitempty"`
}

// Align is a horizontal text alignment relative to the text's anchor.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Text is a single line of text anchored at (X, Y). Y is the baseline.
type Text struct {
	X          Position   `json:"x"`
	Y          Position   `json:"y"`
	Text       string     `json:"text"`
	FontSize   float64    `json:"fontSize,omitempty"`   // default 12
	FontFamily string     `json:"fontFamily,omitempty"` // default Helvetica
	FontStyle  string     `json:"fontStyle,omitempty"`  // normal, italic (default normal)
	FontWeight FontWeight `json:"fontWeight,omitempty"` // normal, bold, 100-900
	Color      string     `json:"color,omitempty"`      // default black
	TextAlign  Align      `json:"textAlign,omitempty"`  // default left
}

// FontWeight is a CSS-like font weight. JSON accepts both strings
// ("bold") and numbers (700).
type FontWeight string

func (w *FontWeight) UnmarshalJSON(data []byte) error {
	if s, ok, err := jsonString(data); err != nil {
		return err
	} else if ok {
		*w = FontWeight(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = FontWeight(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// ImageKind selects the layer an image is drawn on.
type ImageKind string

const (
	Foreground ImageKind = ""
	Background ImageKind = "background"
)

// Image is a raster image, an imported PDF page or a generated barcode.
type Image struct {
	X        Position  `json:"x"`
	Y        Position  `json:"y"`
	Width    Size      `json:"width"`
	Height   Size      `json:"height"`
	Src      string    `json:"src,omitempty"`      // file path, data URI or base64
	Rotation float64   `json:"rotation,omitempty"` // degrees, counter-clockwise
	Kind     ImageKind `json:"type,omitempty"`
	Barcode  *Barcode  `json:"barcode,omitempty"` // replaces Src when set
}

// Barcode describes an image generated from a value.
type Barcode struct {
	Kind  string `json:"kind"` // qr, code128, datamatrix, pdf417
	Value string `json:"value"`
}

// ShapeType discriminates the variants of Shape.
type ShapeType string

const (
	ShapeBox    ShapeType = "box"
	ShapeCircle ShapeType = "circle"
)

// Shape is a box or a circle. The Type field determines which of the
// geometry fields are relevant.
type Shape struct {
	Type ShapeType `json:"type"`
	X    Position  `json:"x"`
	Y    Position  `json:"y"`

	// box
	Width        Size    `json:"width,omitempty"`
	Height       Size    `json:"height,omitempty"`
	BorderRadius float64 `json:"borderRadius,omitempty"`

	// circle
	Radius float64 `json:"radius,omitempty"`

	BackgroundColor string  `json:"backgroundColor,omitempty"` // default white
	BorderWidth     float64 `json:"borderWidth,omitempty"`
	BorderColor     string  `json:"borderColor,omitempty"` // default white
}

// Box returns a box shape.
func Box(x, y Position, width, height Size) *Shape {
	return &Shape{Type: ShapeBox, X: x, Y: y, Width: width, Height: height}
}

// Circle returns a circle shape centered on (x, y).
func Circle(x, y Position, radius float64) *Shape {
	return &Shape{Type: ShapeCircle, X: x, Y: y, Radius: radius}
}

// Options carries document-level settings.
type Options struct {
	Fonts   []*FontFace `json:"fonts,omitempty"`
	Title   string      `json:"title,omitempty"`
	Author  string      `json:"author,omitempty"`
	Subject string      `json:"subject,omitempty"`
}

// FontFace is a TrueType font registered under Family.
type FontFace struct {
	Family string     `json:"family"`
	Src    string     `json:"src"` // file path, data URI or base64
	Weight FontWeight `json:"weight,omitempty"`
	Style  string     `json:"style,omitempty"`
}
