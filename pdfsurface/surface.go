// Package pdfsurface is a drawing surface that encodes PDF documents with
// fpdf.
//
// It accepts absolute-coordinate draw calls on numbered pages and takes
// care of font embedding, image embedding (PNG, JPEG and GIF natively; BMP,
// TIFF and WebP after conversion; PDF pages as imported templates) and
// barcode generation.
//
// Like fpdf, a Surface defers errors: the first failing call records an
// error, later calls do nothing, and Error returns it.
package pdfsurface

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Config is the page setup of a new Surface.
type Config struct {
	Width, Height float64 // page size, already oriented
	Landscape     bool    // recorded for callers; Width and Height win
	Unit          string  // pt (default), mm, cm, in
	Precision     int     // decimal places kept in coordinates, 0 keeps all
	Logger        *slog.Logger

	// CreationDate pins the document's creation date. The zero value uses
	// the time of generation.
	CreationDate time.Time
}

// Surface is a single PDF document under construction.
type Surface struct {
	pdf       *fpdf.Fpdf
	cfg       Config
	log       *slog.Logger
	importer  *gofpdi.Importer
	cp1252    *encoding.Encoder
	fonts     map[string]map[string]bool // family -> registered fpdf styles
	images    map[string]image           // source key -> registered image
	utf8Font  bool                       // current font is an embedded TrueType font
	fontStyle string                     // fpdf style of the current font
	state     graphicsState
}

// graphicsState is the drawing state last requested by the caller. fpdf
// writes state operators into the current page only, so it is re-applied
// whenever another page becomes current.
type graphicsState struct {
	fill      [3]int
	draw      [3]int
	lineWidth float64
	fontSize  float64 // 0 until a font is selected
}

var units = map[string]bool{"pt": true, "mm": true, "cm": true, "in": true}

// New creates a Surface with one empty page.
func New(cfg Config) (*Surface, error) {
	if cfg.Unit == "" {
		cfg.Unit = "pt"
	}
	if !units[cfg.Unit] {
		return nil, fmt.Errorf("pdfsurface: unsupported unit %q", cfg.Unit)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("pdfsurface: invalid page size %gx%g", cfg.Width, cfg.Height)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// The size is already oriented; passing "L" would make fpdf swap it again.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        cfg.Unit,
		Size:           fpdf.SizeType{Wd: cfg.Width, Ht: cfg.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreator("blueprint", true)
	if !cfg.CreationDate.IsZero() {
		pdf.SetCreationDate(cfg.CreationDate)
	}
	pdf.AddPage()

	s := &Surface{
		pdf:      pdf,
		cfg:      cfg,
		log:      cfg.Logger,
		importer: gofpdi.NewImporter(),
		cp1252:   encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
		fonts:    make(map[string]map[string]bool),
		images:   make(map[string]image),
		state:    graphicsState{lineWidth: pdf.GetLineWidth()},
	}
	return s, nil
}

// Fpdf exposes the underlying document for drawing beyond this package.
func (s *Surface) Fpdf() *fpdf.Fpdf { return s.pdf }

// AddPage appends a page and makes it current.
func (s *Surface) AddPage() { s.pdf.AddPage() }

// SetPage makes page n (one-based) current and carries the colors, line
// width and font over to it.
func (s *Surface) SetPage(n int) {
	if n == s.pdf.PageNo() {
		return
	}
	s.pdf.SetPage(n)
	st := s.state
	s.pdf.SetFillColor(st.fill[0], st.fill[1], st.fill[2])
	s.pdf.SetDrawColor(st.draw[0], st.draw[1], st.draw[2])
	s.pdf.SetLineWidth(s.round(st.lineWidth))
	if st.fontSize > 0 {
		// SetFont skips an unchanged font; SetFontSize always emits Tf.
		s.pdf.SetFontSize(st.fontSize)
	}
}

// PageCount returns the number of pages.
func (s *Surface) PageCount() int { return s.pdf.PageCount() }

// Page returns the current page number.
func (s *Surface) Page() int { return s.pdf.PageNo() }

func (s *Surface) SetFillColor(r, g, b int) {
	s.state.fill = [3]int{r, g, b}
	s.pdf.SetFillColor(r, g, b)
}

func (s *Surface) SetDrawColor(r, g, b int) {
	s.state.draw = [3]int{r, g, b}
	s.pdf.SetDrawColor(r, g, b)
}

// SetTextColor needs no tracking: fpdf emits the text color with each
// text operation.
func (s *Surface) SetTextColor(r, g, b int) { s.pdf.SetTextColor(r, g, b) }

func (s *Surface) SetLineWidth(w float64) {
	s.state.lineWidth = w
	s.pdf.SetLineWidth(s.round(w))
}

// RoundedRect fills and strokes a rectangle. A zero radius draws square
// corners.
func (s *Surface) RoundedRect(x, y, w, h, r float64) {
	x, y, w, h, r = s.round(x), s.round(y), s.round(w), s.round(h), s.round(r)
	if r <= 0 {
		s.pdf.Rect(x, y, w, h, "FD")
		return
	}
	s.pdf.RoundedRect(x, y, w, h, r, "1234", "FD")
}

// Circle fills and strokes a circle centered on (x, y).
func (s *Surface) Circle(x, y, r float64) {
	s.pdf.Circle(s.round(x), s.round(y), s.round(r), "FD")
}

// SetMetadata writes the non-empty fields into the document information
// dictionary.
func (s *Surface) SetMetadata(title, author, subject string) {
	if title != "" {
		s.pdf.SetTitle(title, true)
	}
	if author != "" {
		s.pdf.SetAuthor(author, true)
	}
	if subject != "" {
		s.pdf.SetSubject(subject, true)
	}
}

// Error returns the first error recorded by any call, or nil.
func (s *Surface) Error() error {
	if s.pdf.Err() {
		return s.pdf.Error()
	}
	return nil
}

// Output closes the document and writes it to w.
func (s *Surface) Output(w io.Writer) error {
	return s.pdf.Output(w)
}

func (s *Surface) round(v float64) float64 {
	if s.cfg.Precision <= 0 {
		return v
	}
	p := math.Pow10(s.cfg.Precision)
	return math.Round(v*p) / p
}

func (s *Surface) fail(format string, args ...any) {
	if !s.pdf.Err() {
		s.pdf.SetErrorf(format, args...)
	}
}

func normalizeFamily(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}
