package pdfsurface

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/font/sfnt"
)

// FontStyle maps a CSS-like style ("normal", "italic", "bold",
// "bolditalic") and weight ("bold", "700") onto an fpdf style string
// ("", "B", "I", "BI").
func FontStyle(style, weight string) string {
	style = strings.ToLower(style)
	bold := strings.Contains(style, "bold")
	switch w := strings.ToLower(strings.TrimSpace(weight)); w {
	case "bold", "bolder":
		bold = true
	case "", "normal", "lighter":
	default:
		if n, err := strconv.Atoi(w); err == nil && n >= 600 {
			bold = true
		}
	}
	italic := strings.Contains(style, "italic") || strings.Contains(style, "oblique")

	switch {
	case bold && italic:
		return "BI"
	case bold:
		return "B"
	case italic:
		return "I"
	}
	return ""
}

// AddFont embeds a TrueType font read from src (a file path, data URI or
// base64 string) under family in the given style and weight.
func (s *Surface) AddFont(family, style, weight, src string) {
	if s.pdf.Err() {
		return
	}
	if strings.TrimSpace(family) == "" {
		s.fail("font without a family")
		return
	}
	data, err := readSource(src)
	if err != nil {
		s.fail("font %q: %v", family, err)
		return
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		s.fail("font %q: not a TrueType font: %v", family, err)
		return
	}

	fstyle := FontStyle(style, weight)
	s.pdf.AddUTF8FontFromBytes(family, fstyle, data)
	if s.pdf.Err() {
		return
	}

	key := normalizeFamily(family)
	if s.fonts[key] == nil {
		s.fonts[key] = make(map[string]bool)
	}
	s.fonts[key][fstyle] = true

	var buf sfnt.Buffer
	name, _ := f.Name(&buf, sfnt.NameIDFull)
	s.log.Debug("pdfsurface: font registered", "family", family, "style", fstyle, "name", name, "bytes", len(data))
}

// SetFont selects a font. Families registered with AddFont are used as
// embedded TrueType fonts and fall back to their regular style when the
// requested style was not registered; other families must be one of the
// standard PDF fonts (Helvetica, Times, Courier, Symbol, ZapfDingbats).
func (s *Surface) SetFont(family, style, weight string, size float64) {
	fstyle := FontStyle(style, weight)
	styles, embedded := s.fonts[normalizeFamily(family)]
	if embedded && !styles[fstyle] {
		s.log.Debug("pdfsurface: font style not registered, using regular", "family", family, "style", fstyle)
		fstyle = ""
		if !styles[""] {
			for st := range styles {
				fstyle = st
				break
			}
		}
	}
	s.pdf.SetFont(family, fstyle, size)
	s.state.fontSize = size
	s.utf8Font = embedded
	s.fontStyle = fstyle
}

// Text draws s with its baseline at y, aligned on x.
func (s *Surface) Text(x, y float64, text, align string) {
	if s.pdf.Err() {
		return
	}
	if !s.utf8Font {
		encoded, err := s.cp1252.String(text)
		if err != nil {
			s.fail("encoding text %q: %v", text, err)
			return
		}
		text = encoded
	}
	switch align {
	case "center":
		x -= s.pdf.GetStringWidth(text) / 2
	case "right":
		x -= s.pdf.GetStringWidth(text)
	case "", "left":
	default:
		s.fail("unknown text alignment %q", align)
		return
	}
	s.pdf.Text(s.round(x), s.round(y), text)
}

// FontFamilies returns the embedded font families, lower-cased and sorted.
func (s *Surface) FontFamilies() []string {
	out := make([]string, 0, len(s.fonts))
	for family := range s.fonts {
		out = append(out, family)
	}
	sort.Strings(out)
	return out
}
