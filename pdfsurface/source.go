package pdfsurface

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// maxPathLen bounds the strings tried as file paths; longer sources are
// only ever inline data.
const maxPathLen = 4096

// readSource returns the bytes behind src: a data URI, an existing file or
// a base64 string, tried in that order.
func readSource(src string) ([]byte, error) {
	if src == "" {
		return nil, errors.New("empty source")
	}
	if strings.HasPrefix(src, "data:") {
		return readDataURI(src)
	}
	if len(src) <= maxPathLen {
		if info, err := os.Stat(src); err == nil && !info.IsDir() {
			return os.ReadFile(src)
		}
	}
	data, err := decodeBase64(src)
	if err != nil {
		if len(src) <= maxPathLen && !strings.ContainsAny(src, "\n") {
			return nil, fmt.Errorf("%q is neither a readable file nor base64 data", src)
		}
		return nil, fmt.Errorf("decoding base64 source: %w", err)
	}
	return data, nil
}

func readDataURI(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		return decodeBase64(payload)
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return []byte(text), nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// sourceKey names a registered resource after its source string.
func sourceKey(prefix, src string) string {
	sum := sha1.Sum([]byte(src))
	return prefix + "-" + hex.EncodeToString(sum[:])
}
