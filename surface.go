package blueprint

import (
	"io"

	"github.com/lvillar/blueprint/pdfsurface"
)

// Surface is the drawing capability a generation renders onto. All
// coordinates are absolute page units relative to the active page's
// top-left corner. Pages are numbered from 1.
//
// Drawing methods follow the fpdf convention of deferring errors: once a
// call fails the surface records the error, further calls are no-ops and
// Error reports it.
type Surface interface {
	AddPage()
	SetPage(n int)
	PageCount() int

	SetFillColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetTextColor(r, g, b int)
	SetLineWidth(w float64)

	// RoundedRect fills and strokes a rectangle with corner radius r.
	RoundedRect(x, y, w, h, r float64)
	// Circle fills and strokes a circle centered on (x, y).
	Circle(x, y, r float64)

	SetFont(family, style, weight string, size float64)
	// Text draws s with its baseline at y. align positions s relative to
	// x: "left" starts at x, "center" centers on x, "right" ends at x.
	Text(x, y float64, s, align string)

	// Image draws the image at src into the box (x, y, w, h), rotated by
	// rotation degrees counter-clockwise around (x, y).
	Image(src string, x, y, w, h, rotation float64)
	// Barcode draws a generated barcode of the given kind.
	Barcode(kind, value string, x, y, w, h, rotation float64)

	AddFont(family, style, weight, src string)
	SetMetadata(title, author, subject string)

	Error() error
	Output(w io.Writer) error
}

// SurfaceConfig is the page setup handed to a SurfaceFactory.
type SurfaceConfig struct {
	Page        Dimensions // already oriented
	Orientation Orientation
	Unit        string // pt, mm, cm, in
	Precision   int    // decimal places of emitted coordinates
}

// SurfaceFactory creates a fresh surface for one generation. The surface
// must start with exactly one page.
type SurfaceFactory func(SurfaceConfig) (Surface, error)

// NewPDFSurface is the default SurfaceFactory, backed by fpdf.
func NewPDFSurface(cfg SurfaceConfig) (Surface, error) {
	s, err := pdfsurface.New(pdfsurface.Config{
		Width:     cfg.Page.Width,
		Height:    cfg.Page.Height,
		Landscape: cfg.Orientation == Landscape,
		Unit:      cfg.Unit,
		Precision: cfg.Precision,
		Logger:    Logger(),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
