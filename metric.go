package blueprint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type metricKind uint8

const (
	absolute metricKind = iota
	percent
	center
)

// Position is a coordinate on one axis: an absolute value in page units,
// a percentage of the page extent along that axis, or the page center.
// The zero value is absolute 0.
//
// In JSON a Position is a number, the string "center", or a string such as
// "25%".
type Position struct {
	kind  metricKind
	value float64
}

// Pos returns an absolute position.
func Pos(v float64) Position { return Position{kind: absolute, value: v} }

// PosPercent returns a position at p percent of the page extent.
func PosPercent(p float64) Position { return Position{kind: percent, value: p} }

// Center returns the centered position.
func Center() Position { return Position{kind: center} }

// IsCenter reports whether p is the centered position.
func (p Position) IsCenter() bool { return p.kind == center }

// ParsePosition parses "center", "NN%" or a plain number.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if s == "center" {
		return Center(), nil
	}
	v, pct, err := parseMetric(s)
	if err != nil {
		return Position{}, fmt.Errorf("position %q: %w", s, err)
	}
	if pct {
		return PosPercent(v), nil
	}
	return Pos(v), nil
}

func (p Position) String() string {
	switch p.kind {
	case center:
		return "center"
	case percent:
		return strconv.FormatFloat(p.value, 'f', -1, 64) + "%"
	}
	return strconv.FormatFloat(p.value, 'f', -1, 64)
}

func (p Position) MarshalJSON() ([]byte, error) {
	if p.kind == absolute {
		return json.Marshal(p.value)
	}
	return json.Marshal(p.String())
}

func (p *Position) UnmarshalJSON(data []byte) error {
	if s, ok, err := jsonString(data); err != nil {
		return err
	} else if ok {
		v, err := ParsePosition(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	*p = Pos(v)
	return nil
}

// Size is an extent: an absolute value in page units or a percentage of the
// page extent along the matching axis. The zero value is absolute 0.
//
// In JSON a Size is a number or a string such as "90%".
type Size struct {
	kind  metricKind
	value float64
}

// Dim returns an absolute size.
func Dim(v float64) Size { return Size{kind: absolute, value: v} }

// DimPercent returns a size of p percent of the page extent.
func DimPercent(p float64) Size { return Size{kind: percent, value: p} }

// ParseSize parses "NN%" or a plain number.
func ParseSize(s string) (Size, error) {
	v, pct, err := parseMetric(strings.TrimSpace(s))
	if err != nil {
		return Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	if pct {
		return DimPercent(v), nil
	}
	return Dim(v), nil
}

func (s Size) String() string {
	if s.kind == percent {
		return strconv.FormatFloat(s.value, 'f', -1, 64) + "%"
	}
	return strconv.FormatFloat(s.value, 'f', -1, 64)
}

func (s Size) MarshalJSON() ([]byte, error) {
	if s.kind == absolute {
		return json.Marshal(s.value)
	}
	return json.Marshal(s.String())
}

func (s *Size) UnmarshalJSON(data []byte) error {
	if str, ok, err := jsonString(data); err != nil {
		return err
	} else if ok {
		v, err := ParseSize(str)
		if err != nil {
			return err
		}
		*s = v
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	*s = Dim(v)
	return nil
}

// parseMetric parses a number with an optional trailing percent sign.
func parseMetric(s string) (v float64, pct bool, err error) {
	if strings.HasSuffix(s, "%") {
		s, pct = strings.TrimSpace(strings.TrimSuffix(s, "%")), true
	}
	v, err = strconv.ParseFloat(s, 64)
	return v, pct, err
}

func jsonString(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false, err
	}
	return s, true, nil
}

// Metrics resolves declared positions and sizes against a page.
type Metrics struct {
	Page Dimensions
}

// Size resolves a width and a height. Percentages scale by the page width
// and the page height respectively.
func (m Metrics) Size(w, h Size) (float64, float64) {
	return resolveSize(w, m.Page.Width), resolveSize(h, m.Page.Height)
}

// Position resolves an anchor point. A centered axis resolves to the page
// midpoint; the element's own extent is not taken into account, so visual
// centering relies on the surface's alignment (e.g. centered text).
func (m Metrics) Position(x, y Position) (float64, float64) {
	return resolvePosition(x, m.Page.Width, 0), resolvePosition(y, m.Page.Height, 0)
}

// PositionWithin resolves the top-left corner of an element of width
// refWidth. A centered x places the element's box in the middle of the
// page; a centered y still resolves to the vertical midpoint.
func (m Metrics) PositionWithin(x, y Position, refWidth float64) (float64, float64) {
	return resolvePosition(x, m.Page.Width, refWidth), resolvePosition(y, m.Page.Height, 0)
}

func resolveSize(s Size, extent float64) float64 {
	if s.kind == percent {
		return s.value / 100 * extent
	}
	return s.value
}

func resolvePosition(p Position, extent, ref float64) float64 {
	switch p.kind {
	case center:
		return (extent - ref) / 2
	case percent:
		return p.value / 100 * extent
	}
	return p.value
}
