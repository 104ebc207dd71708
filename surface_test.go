package blueprint

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// call is one recorded draw operation together with the state it was
// drawn with.
type call struct {
	Op        string // rect, circle, text, image, barcode
	Page      int
	X, Y      float64
	W, H      float64
	R         float64
	Text      string // text, image src or barcode value
	Align     string
	Fill      RGB
	Stroke    RGB
	Color     RGB
	LineWidth float64
	Font      string
}

// recorder is an in-memory Surface.
type recorder struct {
	cfg     SurfaceConfig
	pages   int
	current int
	calls   []call
	fonts   []string
	meta    [3]string
	err     error

	fill, stroke, color RGB
	lineWidth           float64
	font                string
}

func newRecorder(cfg SurfaceConfig) *recorder {
	return &recorder{cfg: cfg, pages: 1, current: 1}
}

// recording returns a SurfaceFactory and the recorders it has created.
func recording() (SurfaceFactory, func() []*recorder) {
	var (
		mu  sync.Mutex
		all []*recorder
	)
	factory := func(cfg SurfaceConfig) (Surface, error) {
		r := newRecorder(cfg)
		mu.Lock()
		all = append(all, r)
		mu.Unlock()
		return r, nil
	}
	return factory, func() []*recorder {
		mu.Lock()
		defer mu.Unlock()
		return append([]*recorder(nil), all...)
	}
}

func (r *recorder) AddPage() {
	r.pages++
	r.current = r.pages
}

func (r *recorder) SetPage(n int) {
	if n < 1 || n > r.pages {
		r.fail(fmt.Errorf("page %d out of range", n))
		return
	}
	r.current = n
}

func (r *recorder) PageCount() int { return r.pages }

func (r *recorder) SetFillColor(red, g, b int) { r.fill = RGB{red, g, b} }
func (r *recorder) SetDrawColor(red, g, b int) { r.stroke = RGB{red, g, b} }
func (r *recorder) SetTextColor(red, g, b int) { r.color = RGB{red, g, b} }
func (r *recorder) SetLineWidth(w float64)     { r.lineWidth = w }

func (r *recorder) RoundedRect(x, y, w, h, radius float64) {
	r.record(call{Op: "rect", X: x, Y: y, W: w, H: h, R: radius, Fill: r.fill, Stroke: r.stroke, LineWidth: r.lineWidth})
}

func (r *recorder) Circle(x, y, radius float64) {
	r.record(call{Op: "circle", X: x, Y: y, R: radius, Fill: r.fill, Stroke: r.stroke, LineWidth: r.lineWidth})
}

func (r *recorder) SetFont(family, style, weight string, size float64) {
	r.font = fmt.Sprintf("%s/%s/%s/%g", family, style, weight, size)
}

func (r *recorder) Text(x, y float64, s, align string) {
	r.record(call{Op: "text", X: x, Y: y, Text: s, Align: align, Color: r.color, Font: r.font})
}

func (r *recorder) Image(src string, x, y, w, h, rotation float64) {
	r.record(call{Op: "image", X: x, Y: y, W: w, H: h, R: rotation, Text: src})
}

func (r *recorder) Barcode(kind, value string, x, y, w, h, rotation float64) {
	r.record(call{Op: "barcode", X: x, Y: y, W: w, H: h, R: rotation, Text: kind + ":" + value})
}

func (r *recorder) AddFont(family, style, weight, src string) {
	if src == "" {
		r.fail(errors.New("font without source"))
		return
	}
	r.fonts = append(r.fonts, family)
}

func (r *recorder) SetMetadata(title, author, subject string) {
	r.meta = [3]string{title, author, subject}
}

func (r *recorder) Error() error { return r.err }

func (r *recorder) Output(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	_, err := fmt.Fprintf(w, "%%PDF-recorded pages=%d calls=%d", r.pages, len(r.calls))
	return err
}

func (r *recorder) record(c call) {
	if r.err != nil {
		return
	}
	c.Page = r.current
	r.calls = append(r.calls, c)
}

func (r *recorder) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// ops returns the operation names of the recorded calls.
func (r *recorder) ops() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Op
	}
	return out
}
