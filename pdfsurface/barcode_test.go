package pdfsurface

import (
	"bytes"
	"image/png"
	"testing"
)

func TestEncodeBarcode(t *testing.T) {
	for _, kind := range []string{"qr", "code128", "datamatrix", "pdf417"} {
		t.Run(kind, func(t *testing.T) {
			data, err := encodeBarcode(kind, "INV-2024-0042")
			if err != nil {
				t.Fatalf("encodeBarcode: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
				t.Fatalf("empty image %v", b)
			}
		})
	}
}

func TestEncodeBarcodeErrors(t *testing.T) {
	if _, err := encodeBarcode("qr", ""); err == nil {
		t.Error("expected error for an empty value")
	}
	if _, err := encodeBarcode("ean99", "123"); err == nil {
		t.Error("expected error for an unknown kind")
	}
}

func TestBarcodeDraw(t *testing.T) {
	s := newTestSurface(t)
	s.Barcode("QR", "https://example.com", 10, 10, 80, 80, 0)
	s.Barcode("qr", "https://example.com", 100, 10, 80, 80, 90)
	s.Barcode("code128", "ABC-123", 10, 100, 200, 40, 0)
	if err := s.Error(); err != nil {
		t.Fatalf("Error: %v", err)
	}
	if len(s.images) != 2 {
		t.Fatalf("registered %d images, want 2", len(s.images))
	}
	output(t, s)
}
