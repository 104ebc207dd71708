package blueprint

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// RGB is an opaque color with 8-bit channels.
type RGB struct {
	R, G, B int
}

var (
	white = RGB{255, 255, 255}
	black = RGB{0, 0, 0}
)

// ParseColor parses "#RGB", "#RRGGBB" (the leading '#' is optional) or a
// CSS color name such as "steelblue".
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGB{int(c.R), int(c.G), int(c.B)}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	return RGB{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}, nil
}

// colorOr parses s, or returns def when s is empty.
func colorOr(s string, def RGB) (RGB, error) {
	if s == "" {
		return def, nil
	}
	return ParseColor(s)
}
