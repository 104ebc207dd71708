package blueprint

import (
	"fmt"
	"log/slog"
)

const (
	defaultFontSize   = 12
	defaultFontFamily = "Helvetica"
	defaultFontStyle  = "normal"
)

// renderer draws fragments onto one surface for one generation.
type renderer struct {
	surface Surface
	metrics Metrics
	pages   *pageState
	log     *slog.Logger
}

// render draws f: background images, shapes, text, then foreground images.
// Loops and options on f are not looked at.
func (r *renderer) render(f *Fragment) error {
	if f == nil {
		return nil
	}

	var backgrounds, foregrounds []*Image
	for _, img := range f.Images {
		if img == nil {
			continue
		}
		if img.Kind == Background {
			backgrounds = append(backgrounds, img)
		} else {
			foregrounds = append(foregrounds, img)
		}
	}

	for i, img := range backgrounds {
		if err := r.drawImage(img); err != nil {
			return renderError(fmt.Sprintf("background image %d", i), err)
		}
	}
	for i, shape := range f.Shapes {
		if shape == nil {
			continue
		}
		if err := r.drawShape(shape); err != nil {
			return renderError(fmt.Sprintf("shape %d", i), err)
		}
	}
	for i, text := range f.Text {
		if text == nil {
			continue
		}
		if err := r.drawText(text); err != nil {
			return renderError(fmt.Sprintf("text %d", i), err)
		}
	}
	for i, img := range foregrounds {
		if err := r.drawImage(img); err != nil {
			return renderError(fmt.Sprintf("image %d", i), err)
		}
	}
	if err := r.surface.Error(); err != nil {
		return renderError("surface", err)
	}
	return nil
}

func (r *renderer) drawShape(s *Shape) error {
	fill, err := colorOr(s.BackgroundColor, white)
	if err != nil {
		return err
	}
	stroke, err := colorOr(s.BorderColor, white)
	if err != nil {
		return err
	}

	switch s.Type {
	case ShapeBox:
		w, h := r.metrics.Size(s.Width, s.Height)
		x, y := r.metrics.PositionWithin(s.X, s.Y, w)
		r.setShapeStyle(fill, stroke, s.BorderWidth)
		py := r.pages.place(y, h)
		r.surface.RoundedRect(x, py, w, h, s.BorderRadius)
	case ShapeCircle:
		x, y := r.metrics.Position(s.X, s.Y)
		r.setShapeStyle(fill, stroke, s.BorderWidth)
		py := r.pages.place(y, s.Radius)
		r.surface.Circle(x, py, s.Radius)
	default:
		return fmt.Errorf("unknown shape type %q", s.Type)
	}
	return nil
}

func (r *renderer) setShapeStyle(fill, stroke RGB, width float64) {
	r.surface.SetFillColor(fill.R, fill.G, fill.B)
	r.surface.SetDrawColor(stroke.R, stroke.G, stroke.B)
	r.surface.SetLineWidth(width)
}

func (r *renderer) drawText(t *Text) error {
	color, err := colorOr(t.Color, black)
	if err != nil {
		return err
	}
	x, y := r.metrics.Position(t.X, t.Y)

	size := t.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	family := t.FontFamily
	if family == "" {
		family = defaultFontFamily
	}
	style := t.FontStyle
	if style == "" {
		style = defaultFontStyle
	}
	align := t.TextAlign
	if align == "" {
		align = AlignLeft
	}

	r.surface.SetFont(family, style, string(t.FontWeight), size)
	r.surface.SetTextColor(color.R, color.G, color.B)
	py := r.pages.place(y, 0)
	r.surface.Text(x, py, t.Text, string(align))
	return nil
}

func (r *renderer) drawImage(img *Image) error {
	w, h := r.metrics.Size(img.Width, img.Height)
	var x, y float64
	if img.Rotation != 0 {
		x, y = r.metrics.Position(img.X, img.Y)
	} else {
		x, y = r.metrics.PositionWithin(img.X, img.Y, w)
	}

	if img.Barcode != nil {
		py := r.pages.place(y, h)
		r.surface.Barcode(img.Barcode.Kind, img.Barcode.Value, x, py, w, h, img.Rotation)
		return nil
	}
	if img.Src == "" {
		return fmt.Errorf("image requires a src or a barcode")
	}
	py := r.pages.place(y, h)
	r.surface.Image(img.Src, x, py, w, h, img.Rotation)
	return nil
}
