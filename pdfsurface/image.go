package pdfsurface

import (
	"bytes"
	"fmt"
	goimage "image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// image is a resource registered with the document, drawn by name.
type image struct {
	name     string
	template int  // imported PDF page template, when pdf is set
	pdf      bool // drawn with the importer instead of as an image
}

// Image draws the image at src into (x, y, w, h), rotated counter-clockwise
// by rotation degrees around (x, y). A PDF source draws its first page.
func (s *Surface) Image(src string, x, y, w, h, rotation float64) {
	if s.pdf.Err() {
		return
	}
	key := sourceKey("img", src)
	img, ok := s.images[key]
	if !ok {
		data, err := readSource(src)
		if err != nil {
			s.fail("image: %v", err)
			return
		}
		img, err = s.registerImage(key, data)
		if err != nil {
			s.fail("image: %v", err)
			return
		}
		s.images[key] = img
	}
	s.drawImage(img, x, y, w, h, rotation)
}

func (s *Surface) drawImage(img image, x, y, w, h, rotation float64) {
	x, y, w, h = s.round(x), s.round(y), s.round(w), s.round(h)
	if rotation != 0 {
		s.pdf.TransformBegin()
		s.pdf.TransformRotate(rotation, x, y)
		defer s.pdf.TransformEnd()
	}
	if img.pdf {
		s.importer.UseImportedTemplate(s.pdf, img.template, x, y, w, h)
		return
	}
	s.pdf.ImageOptions(img.name, x, y, w, h, false, fpdf.ImageOptions{AllowNegativePosition: true}, 0, "")
}

// registerImage embeds data under name. Formats fpdf cannot embed directly
// are decoded and re-encoded as PNG.
func (s *Surface) registerImage(name string, data []byte) (image, error) {
	typ := sniffImageType(data)
	switch typ {
	case "PDF":
		tpl, err := s.importPage(data)
		if err != nil {
			return image{}, err
		}
		return image{name: name, template: tpl, pdf: true}, nil
	case "":
		decoded, format, err := goimage.Decode(bytes.NewReader(data))
		if err != nil {
			return image{}, fmt.Errorf("unsupported image data: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, decoded); err != nil {
			return image{}, fmt.Errorf("converting %s image: %w", format, err)
		}
		s.log.Debug("pdfsurface: image converted to PNG", "format", format, "bytes", buf.Len())
		data, typ = buf.Bytes(), "PNG"
	}
	return s.registerReader(name, typ, bytes.NewReader(data))
}

func (s *Surface) registerReader(name, typ string, r io.Reader) (image, error) {
	s.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: typ}, r)
	if s.pdf.Err() {
		return image{}, s.pdf.Error()
	}
	return image{name: name}, nil
}

// importPage imports the first page of a PDF document as a template.
func (s *Surface) importPage(data []byte) (tpl int, err error) {
	// gofpdi panics on documents it cannot parse.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("importing PDF page: %v", r)
		}
	}()
	rs := io.ReadSeeker(bytes.NewReader(data))
	tpl = s.importer.ImportPageFromStream(s.pdf, &rs, 1, "/MediaBox")
	if s.pdf.Err() {
		return 0, s.pdf.Error()
	}
	return tpl, nil
}

// sniffImageType returns the fpdf image type of data, "PDF" for a PDF
// document, or "" when the data needs converting.
func sniffImageType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "PNG"
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return "JPG"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return "GIF"
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return "PDF"
	}
	return ""
}
