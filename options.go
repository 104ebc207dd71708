package blueprint

// Option is a functional option for configuring a Blueprint via New.
type Option func(*config)

type config struct {
	format      string
	custom      *Format
	orientation Orientation
	unit        string
	precision   int
	surface     SurfaceFactory
}

// WithFormat sets the page format by name: A2, A3, A4, A5, letter or card.
// An unknown name makes New fail with ErrInvalidFormat.
func WithFormat(name string) Option {
	return func(c *config) {
		c.format = name
		c.custom = nil
	}
}

// WithPageSizeCustom sets an explicit portrait [width, height] in page units.
func WithPageSizeCustom(width, height float64) Option {
	return func(c *config) {
		f := CustomFormat(width, height)
		c.custom = &f
	}
}

// WithOrientation sets the page orientation. Landscape swaps the format's
// width and height.
func WithOrientation(o Orientation) Option {
	return func(c *config) {
		c.orientation = o
	}
}

// WithUnit sets the unit the surface interprets coordinates in.
// Use "pt" (default), "mm", "cm" or "in". Named formats are converted
// into the unit; WithPageSizeCustom sizes are taken as already in it.
// Any other unit makes New fail with ErrInvalidFormat.
func WithUnit(unit string) Option {
	return func(c *config) {
		c.unit = unit
	}
}

// WithPrecision sets the number of decimal places coordinates are rounded
// to in the output.
func WithPrecision(places int) Option {
	return func(c *config) {
		c.precision = places
	}
}

// WithSurface replaces the fpdf-backed drawing surface.
func WithSurface(factory SurfaceFactory) Option {
	return func(c *config) {
		c.surface = factory
	}
}
