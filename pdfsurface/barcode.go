package pdfsurface

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/qr"
	pdf417 "github.com/ruudk/golang-pdf417"
)

const (
	// barcodeModule is the pixel size of one barcode module in the
	// embedded image.
	barcodeModule = 4
	// linearHeight is the pixel height of one-dimensional barcodes.
	linearHeight = 64

	pdf417Columns       = 6
	pdf417SecurityLevel = 5
)

// Barcode draws a barcode of the given kind (qr, code128, datamatrix,
// pdf417) encoding value into (x, y, w, h).
func (s *Surface) Barcode(kind, value string, x, y, w, h, rotation float64) {
	if s.pdf.Err() {
		return
	}
	kind = strings.ToLower(kind)
	key := sourceKey("barcode-"+kind, value)
	img, ok := s.images[key]
	if !ok {
		data, err := encodeBarcode(kind, value)
		if err != nil {
			s.fail("barcode: %v", err)
			return
		}
		img, err = s.registerReader(key, "PNG", bytes.NewReader(data))
		if err != nil {
			s.fail("barcode: %v", err)
			return
		}
		s.images[key] = img
	}
	s.drawImage(img, x, y, w, h, rotation)
}

// encodeBarcode renders value as a PNG image.
func encodeBarcode(kind, value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%s: empty value", kind)
	}
	var (
		code barcode.Barcode
		err  error
	)
	switch kind {
	case "qr":
		code, err = qr.Encode(value, qr.M, qr.Auto)
	case "code128":
		code, err = code128.Encode(value)
	case "datamatrix":
		code, err = datamatrix.Encode(value)
	case "pdf417":
		code = pdf417.Encode(value, pdf417Columns, pdf417SecurityLevel)
	default:
		return nil, fmt.Errorf("unknown barcode kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	b := code.Bounds()
	height := b.Dy() * barcodeModule
	if code.Metadata().Dimensions == 1 {
		height = linearHeight
	}
	scaled, err := barcode.Scale(code, b.Dx()*barcodeModule, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return buf.Bytes(), nil
}
