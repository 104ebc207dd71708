// Package schemafile loads blueprint schemas from JSON documents.
//
// A schema document is a fragment object with the keys "text", "images",
// "shapes", "loops" and "options". It may also be wrapped as
// {"schema": {...}, "data": {...}}, in which case "data" is the default
// data used when the caller supplies none.
//
// Any string value containing "{{" is a Go text/template evaluated against
// the generation's data, with the sprig function map available. Template
// output stays a string; positions and sizes accept numeric strings, and
// output for the plain-number fields ("radius", "fontSize",
// "borderRadius", "borderWidth", "rotation") is converted to a number, so
// coordinates can be computed:
//
//	{
//	  "text": [{"x": "center", "y": 160, "text": "Hello {{ .user.name }}!", "textAlign": "center"}],
//	  "loops": [{
//	    "data": "rows",
//	    "template": {
//	      "text": [{"x": 30, "y": "{{ add 290 (mul .index 30) }}", "text": "{{ .row.number }}. {{ .row.value }}"}]
//	    }
//	  }]
//	}
//
// Inside a loop template "." holds "row", "index" and "data" (the
// generation's data).
package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/lvillar/blueprint"
)

var fragmentKeys = map[string]bool{
	"text":    true,
	"images":  true,
	"shapes":  true,
	"loops":   true,
	"options": true,
}

// Source is a parsed schema document.
type Source struct {
	root      map[string]any
	loops     []rawLoop
	data      any
	hasData   bool
	templates map[string]*template.Template
}

type rawLoop struct {
	data     any // dotted path string or literal rows
	template map[string]any
}

// Load reads and parses the schema document at path.
func Load(path string) (*Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &blueprint.Error{Op: "load", Kind: blueprint.ErrSchemaFileNotFound, Cause: err}
		}
		return nil, &blueprint.Error{Op: "load", Cause: err}
	}
	src, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// Parse parses a schema document. Template syntax is checked here so that
// a malformed document never reaches rendering.
func Parse(raw []byte) (*Source, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return nil, invalidExport(fmt.Errorf("decoding JSON: %w", err))
	}
	if err := expectEOF(dec); err != nil {
		return nil, invalidExport(err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, invalidExport(fmt.Errorf("top level is %s, want an object", jsonType(doc)))
	}

	src := &Source{templates: make(map[string]*template.Template)}
	if schema, wrapped := obj["schema"]; wrapped {
		inner, ok := schema.(map[string]any)
		if !ok {
			return nil, invalidExport(fmt.Errorf(`"schema" is %s, want an object`, jsonType(schema)))
		}
		for key := range obj {
			if key != "schema" && key != "data" {
				return nil, invalidExport(fmt.Errorf("unknown key %q next to \"schema\"", key))
			}
		}
		src.data, src.hasData = obj["data"]
		obj = inner
	}

	for _, key := range sortedKeys(obj) {
		if !fragmentKeys[key] {
			return nil, invalidExport(fmt.Errorf("unknown key %q", key))
		}
	}
	loops, err := parseLoops(obj["loops"])
	if err != nil {
		return nil, invalidExport(err)
	}
	delete(obj, "loops")
	src.root, src.loops = obj, loops

	if err := src.compile(obj); err != nil {
		return nil, invalidExport(err)
	}
	for i, l := range loops {
		if err := src.compile(l.template); err != nil {
			return nil, invalidExport(fmt.Errorf("loop %d: %w", i, err))
		}
	}
	return src, nil
}

func parseLoops(v any) ([]rawLoop, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf(`"loops" is %s, want an array`, jsonType(v))
	}
	loops := make([]rawLoop, len(list))
	for i, item := range list {
		if item == nil {
			continue
		}
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("loop %d is %s, want an object", i, jsonType(item))
		}
		tpl, ok := obj["template"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("loop %d: \"template\" must be an object", i)
		}
		for key := range tpl {
			if key == "loops" || key == "options" || !fragmentKeys[key] {
				return nil, fmt.Errorf("loop %d: key %q is not allowed in a template", i, key)
			}
		}
		switch d := obj["data"].(type) {
		case nil, string, []any:
			loops[i] = rawLoop{data: d, template: tpl}
		default:
			return nil, fmt.Errorf("loop %d: \"data\" is %s, want a path or an array", i, jsonType(d))
		}
	}
	return loops, nil
}

// DefaultData returns the data embedded in a wrapped document.
func (s *Source) DefaultData() (any, bool) {
	return s.data, s.hasData
}

// Schema returns the document as a blueprint.Schema. The schema is safe
// for concurrent use.
func (s *Source) Schema() blueprint.Schema {
	return s.evaluate
}

func (s *Source) evaluate(data any) (*blueprint.Fragment, error) {
	f, err := s.fragment(s.root, data)
	if err != nil {
		return nil, err
	}
	for i, l := range s.loops {
		if l.template == nil {
			f.Loops = append(f.Loops, nil)
			continue
		}
		rows, err := loopRows(l.data, data)
		if err != nil {
			return nil, fmt.Errorf("loop %d: %w", i, err)
		}
		tpl := l.template
		f.Loops = append(f.Loops, &blueprint.Loop{
			Data: rows,
			Template: func(row any, index int) (*blueprint.Fragment, error) {
				return s.fragment(tpl, map[string]any{"row": row, "index": index, "data": data})
			},
		})
	}
	return f, nil
}

// fragment expands the templates in obj against dot and decodes the result.
func (s *Source) fragment(obj map[string]any, dot any) (*blueprint.Fragment, error) {
	expanded, err := s.expand(obj, dot)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(expanded)
	if err != nil {
		return nil, err
	}
	var f blueprint.Fragment
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding fragment: %w", err)
	}
	return &f, nil
}

// loopRows resolves a loop's data against the generation's data.
func loopRows(from, data any) ([]any, error) {
	switch d := from.(type) {
	case nil:
		return nil, nil
	case []any:
		return d, nil
	case string:
		v, ok := lookup(data, d)
		if !ok || v == nil {
			return nil, nil
		}
		rows, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%q is %s, want an array", d, jsonType(v))
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unsupported loop data %T", from)
}

// lookup follows a dotted path ("rows", ".user.items") through nested
// objects.
func lookup(data any, path string) (any, bool) {
	cur := data
	for _, part := range strings.Split(strings.TrimPrefix(path, "."), ".") {
		if part == "" {
			continue
		}
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func invalidExport(err error) error {
	return &blueprint.Error{Op: "parse", Kind: blueprint.ErrInvalidSchemaExport, Cause: err}
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64, json.Number:
		return "a number"
	case bool:
		return "a boolean"
	}
	return fmt.Sprintf("%T", v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// funcs is shared by every template; sprig builds a fresh map per call.
var funcs = sprig.TxtFuncMap()
