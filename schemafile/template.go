package schemafile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"
)

// compile parses every template string under v.
func (s *Source) compile(v any) error {
	switch v := v.(type) {
	case map[string]any:
		for _, key := range sortedKeys(v) {
			if err := s.compile(v[key]); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	case []any:
		for i, item := range v {
			if err := s.compile(item); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	case string:
		if !isTemplate(v) {
			return nil
		}
		if _, ok := s.templates[v]; ok {
			return nil
		}
		tpl, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(v)
		if err != nil {
			return err
		}
		s.templates[v] = tpl
	}
	return nil
}

// expand returns a copy of v with every template string executed against
// dot.
func (s *Source) expand(v, dot any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			x, err := s.expand(item, dot)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			if out, ok := x.(string); ok && numericKeys[key] && isTemplate(item.(string)) {
				x = number(out)
			}
			out[key] = x
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			x, err := s.expand(item, dot)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = x
		}
		return out, nil
	case string:
		return s.execute(v, dot)
	}
	return v, nil
}

func (s *Source) execute(text string, dot any) (any, error) {
	tpl, ok := s.templates[text]
	if !ok {
		return text, nil
	}
	var b strings.Builder
	if err := tpl.Execute(&b, dot); err != nil {
		return nil, err
	}
	return b.String(), nil
}

// numericKeys are the plain-number fields of the element types. Positions,
// sizes and font weights take numeric strings as they are.
var numericKeys = map[string]bool{
	"radius":       true,
	"fontSize":     true,
	"borderRadius": true,
	"borderWidth":  true,
	"rotation":     true,
}

// number converts template output destined for a numeric field. Output
// that is not a finite number is kept as a string and rejected when the
// fragment is decoded.
func number(s string) any {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return s
	}
	return n
}

func isTemplate(s string) bool {
	return strings.Contains(s, "{{")
}
