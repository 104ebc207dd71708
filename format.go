package blueprint

import (
	"fmt"
	"strconv"
	"strings"
)

// Orientation selects whether the format's pair is used as is or swapped.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// ParseOrientation accepts "portrait", "landscape" and their one-letter
// forms "P" and "L", case-insensitively. The empty string is portrait.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "portrait", "p":
		return Portrait, nil
	case "landscape", "l":
		return Landscape, nil
	}
	return Portrait, newError("orientation", ErrInvalidOrientation, fmt.Errorf("%q", s))
}

// Dimensions is a page size in page units.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Format is a page format: a name and its portrait [width, height] pair.
type Format struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Named formats, in points.
var (
	A2     = Format{Name: "A2", Width: 1190.55, Height: 1683.78}
	A3     = Format{Name: "A3", Width: 841.89, Height: 1190.55}
	A4     = Format{Name: "A4", Width: 595.28, Height: 841.89}
	A5     = Format{Name: "A5", Width: 419.53, Height: 595.28}
	Letter = Format{Name: "letter", Width: 612, Height: 792}
	Card   = Format{Name: "card", Width: 153, Height: 243}
)

var namedFormats = [...]Format{A2, A3, A4, A5, Letter, Card}

// Formats returns the named formats: A2, A3, A4, A5, letter, card.
func Formats() []Format {
	out := make([]Format, len(namedFormats))
	copy(out, namedFormats[:])
	return out
}

// CustomFormat returns an unnamed format with an explicit [width, height].
func CustomFormat(width, height float64) Format {
	return Format{Width: width, Height: height}
}

// LookupFormat finds a named format. Names match case-insensitively.
func LookupFormat(name string) (Format, error) {
	for _, f := range namedFormats {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return Format{}, newError("format", ErrInvalidFormat, fmt.Errorf("%q", name))
}

// ParseFormat accepts a named format or an explicit "WIDTHxHEIGHT" pair.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	if w, h, ok := strings.Cut(strings.ToLower(s), "x"); ok {
		width, errW := strconv.ParseFloat(w, 64)
		height, errH := strconv.ParseFloat(h, 64)
		if errW == nil && errH == nil && width > 0 && height > 0 {
			return CustomFormat(width, height), nil
		}
	}
	return LookupFormat(s)
}

// unitScale is the number of points in one page unit.
var unitScale = map[string]float64{
	"pt": 1,
	"mm": 72 / 25.4,
	"cm": 72 / 2.54,
	"in": 72,
}

// inUnit converts a named format, which is defined in points, into unit.
// Custom formats are already in page units.
func (f Format) inUnit(unit string) (Format, error) {
	scale, ok := unitScale[unit]
	if !ok {
		return Format{}, newError("unit", ErrInvalidFormat, fmt.Errorf("unsupported unit %q", unit))
	}
	if f.Name == "" || scale == 1 {
		return f, nil
	}
	f.Width /= scale
	f.Height /= scale
	return f, nil
}

// Dimensions returns the page size for the orientation: the format's pair,
// swapped when o is Landscape.
func (f Format) Dimensions(o Orientation) Dimensions {
	if o == Landscape {
		return Dimensions{Width: f.Height, Height: f.Width}
	}
	return Dimensions{Width: f.Width, Height: f.Height}
}
