package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lvillar/blueprint"
)

// ParseData interprets arg as a path to a JSON file when such a file
// exists, and as inline JSON otherwise. An empty arg yields nil data.
func ParseData(arg string) (any, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, nil
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return LoadData(arg)
	}
	v, err := decodeData([]byte(arg))
	if err != nil {
		return nil, &blueprint.Error{Op: "data", Kind: blueprint.ErrInvalidDataInput, Cause: err}
	}
	return v, nil
}

// LoadData reads a JSON data file.
func LoadData(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &blueprint.Error{Op: "data", Kind: blueprint.ErrInvalidDataInput, Cause: err}
	}
	v, err := decodeData(raw)
	if err != nil {
		return nil, &blueprint.Error{Op: "data", Kind: blueprint.ErrInvalidDataInput, Cause: fmt.Errorf("%s: %w", path, err)}
	}
	return v, nil
}

func decodeData(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return v, nil
}

// expectEOF fails unless dec has nothing left but whitespace.
func expectEOF(dec *json.Decoder) error {
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("trailing data after JSON value at offset %d", dec.InputOffset())
	}
	return nil
}
