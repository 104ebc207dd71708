// Package blueprint turns a data-driven page description into a PDF.
//
// A Schema is evaluated against data to produce a Fragment of text, shapes
// and images. Positions and sizes may be absolute, percentages of the page,
// or centered; they are resolved against the page dimensions and drawn
// onto a paginated surface. An element whose vertical offset lies beyond
// the first page is placed on a later page, and pages are appended as
// needed. Loops expand a per-row template over a data collection after the
// base fragment has been drawn.
//
// Example:
//
//	bp, err := blueprint.New(func(data any) (*blueprint.Fragment, error) {
//	    return &blueprint.Fragment{
//	        Shapes: []*blueprint.Shape{
//	            blueprint.Box(blueprint.Center(), blueprint.Pos(20), blueprint.Dim(100), blueprint.Dim(100)),
//	        },
//	    }, nil
//	}, nil, blueprint.WithFormat("A4"))
//	if err != nil {
//	    return err
//	}
//	pdf, err := bp.GenerateBytes()
package blueprint

import (
	"bytes"
	"fmt"
	"io"
)

// Blueprint pairs a Schema with its data and a page configuration. It holds
// no per-generation state, so it may generate concurrently.
type Blueprint struct {
	schema  Schema
	data    any
	cfg     config
	page    Dimensions
	surface SurfaceFactory
}

// New creates a Blueprint. If no options are specified it renders A4
// portrait pages in points with 3 decimal places of precision.
func New(schema Schema, data any, opts ...Option) (*Blueprint, error) {
	if schema == nil {
		return nil, newError("new", ErrInvalidSchemaExport, fmt.Errorf("nil schema"))
	}
	cfg := config{
		format:      A4.Name,
		orientation: Portrait,
		unit:        "pt",
		precision:   3,
		surface:     NewPDFSurface,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var format Format
	if cfg.custom != nil {
		format = *cfg.custom
	} else {
		f, err := LookupFormat(cfg.format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	format, err := format.inUnit(cfg.unit)
	if err != nil {
		return nil, err
	}
	if format.Width <= 0 || format.Height <= 0 {
		return nil, newError("new", ErrInvalidFormat, fmt.Errorf("page size %gx%g", format.Width, format.Height))
	}

	return &Blueprint{
		schema:  schema,
		data:    data,
		cfg:     cfg,
		page:    format.Dimensions(cfg.orientation),
		surface: cfg.surface,
	}, nil
}

// Dimensions returns the oriented page size used by every generation.
func (b *Blueprint) Dimensions() Dimensions {
	return b.page
}

// Render runs one generation and writes the PDF to w. Nothing is written
// when the generation fails.
func (b *Blueprint) Render(w io.Writer) error {
	surface, err := b.build()
	if err != nil {
		return err
	}
	if err := surface.Output(w); err != nil {
		return newError("output", ErrRender, err)
	}
	return nil
}

// build evaluates the schema and draws it onto a fresh surface.
func (b *Blueprint) build() (Surface, error) {
	log := Logger()

	compiled, err := b.schema(b.data)
	if err != nil {
		return nil, renderError("schema", err)
	}
	if compiled == nil {
		compiled = &Fragment{}
	}
	loops, options := compiled.Loops, compiled.Options
	base := &Fragment{Text: compiled.Text, Images: compiled.Images, Shapes: compiled.Shapes}

	surface, err := b.surface(SurfaceConfig{
		Page:        b.page,
		Orientation: b.cfg.orientation,
		Unit:        b.cfg.unit,
		Precision:   b.cfg.precision,
	})
	if err != nil {
		return nil, newError("surface", ErrRender, err)
	}

	r := &renderer{
		surface: surface,
		metrics: Metrics{Page: b.page},
		pages:   newPageState(surface, b.page.Height, log),
		log:     log,
	}

	if options != nil {
		for _, font := range options.Fonts {
			if font == nil {
				continue
			}
			surface.AddFont(font.Family, font.Style, string(font.Weight), font.Src)
		}
		surface.SetMetadata(options.Title, options.Author, options.Subject)
		if err := surface.Error(); err != nil {
			return nil, newError("options", ErrRender, err)
		}
	}

	if err := r.render(base); err != nil {
		return nil, err
	}
	for i, loop := range loops {
		if err := r.expand(loop); err != nil {
			return nil, renderError(fmt.Sprintf("loop %d", i), err)
		}
	}

	log.Debug("blueprint: generated",
		"pages", r.pages.count,
		"width", b.page.Width,
		"height", b.page.Height,
		"loops", len(loops))
	return surface, nil
}

// OutputKind selects the representation Generate returns.
type OutputKind int

const (
	OutputString OutputKind = iota // textual (default)
	OutputBytes                    // raw binary buffer
	OutputBlob                     // *Blob wrapper
)

// Output is the result of Generate in the requested representation.
type Output struct {
	Kind OutputKind
	data []byte
}

// String returns the document as text. PDF bytes are carried unchanged.
func (o *Output) String() string { return string(o.data) }

// Bytes returns the raw document bytes.
func (o *Output) Bytes() []byte { return o.data }

// Blob wraps the document with its media type.
func (o *Output) Blob() *Blob { return &Blob{Type: MIMEType, data: o.data} }

// MIMEType is the media type of generated documents.
const MIMEType = "application/pdf"

// Blob is a typed binary document.
type Blob struct {
	Type string
	data []byte
}

// Size returns the length of the document in bytes.
func (b *Blob) Size() int { return len(b.data) }

// Bytes returns the document bytes.
func (b *Blob) Bytes() []byte { return b.data }

// Reader returns a reader over the document bytes.
func (b *Blob) Reader() io.Reader { return bytes.NewReader(b.data) }

// Generate runs one generation and returns it in the requested representation.
func (b *Blueprint) Generate(kind OutputKind) (*Output, error) {
	var buf bytes.Buffer
	if err := b.Render(&buf); err != nil {
		return nil, err
	}
	return &Output{Kind: kind, data: buf.Bytes()}, nil
}

// GenerateString runs one generation and returns the document as text.
func (b *Blueprint) GenerateString() (string, error) {
	out, err := b.Generate(OutputString)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// GenerateBytes runs one generation and returns the raw document bytes.
func (b *Blueprint) GenerateBytes() ([]byte, error) {
	out, err := b.Generate(OutputBytes)
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// GenerateBlob runs one generation and returns the document as a Blob.
func (b *Blueprint) GenerateBlob() (*Blob, error) {
	out, err := b.Generate(OutputBlob)
	if err != nil {
		return nil, err
	}
	return out.Blob(), nil
}
