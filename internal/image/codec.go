package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfimage "seehuhn.de/go/pdf/graphics/image"

	"github.com/youruser/coverapp/internal/cover"
	apperr "github.com/youruser/coverapp/internal/errors"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpg"
	PDF  Format = "pdf"
)

const jpegQuality = 95

// ParseFormat maps a format name to a Format. Unknown names fall back to
// PNG; ok reports whether s was recognized.
func ParseFormat(s string) (f Format, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png", "":
		return PNG, true
	case "jpg", "jpeg":
		return JPEG, true
	case "pdf":
		return PDF, true
	}
	return PNG, false
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case PDF:
		return "application/pdf"
	}
	return "image/png"
}

// Ext returns the file extension of f without the dot.
func (f Format) Ext() string { return string(f) }

// DecodeImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image of at
// most cover.MaxPixels pixels.
func DecodeImage(r io.Reader) (image.Image, error) {
	return DecodeImageLimit(r, cover.MaxPixels)
}

// DecodeImageLimit decodes an image after checking the dimensions in its
// header against maxPixels, so oversized images are rejected before any
// pixel buffer is allocated.
func DecodeImageLimit(r io.Reader, maxPixels int64) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeImageDecode, err, "cannot read image")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeImageDecode, err, "cannot decode image")
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > maxPixels {
		return nil, apperr.New(apperr.ErrCodeImageDecode,
			"image of %dx%d pixels exceeds the limit of %d pixels", cfg.Width, cfg.Height, maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeImageDecode, err, "cannot decode image")
	}
	if img.Bounds().Empty() {
		return nil, apperr.New(apperr.ErrCodeImageDecode, "image has no pixels")
	}
	return img, nil
}

// Encode writes img to w in format f. JPEG output is flattened onto white
// since JPEG has no alpha channel. PDF output is a single page whose size
// is the raster at cover.DPI.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case JPEG:
		return imaging.Encode(w, flatten(img), imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case PDF:
		return encodePDF(w, img)
	}
	return imaging.Encode(w, img, imaging.PNG)
}

func flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

func encodePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	width := float64(b.Dx()) * 72 / cover.DPI
	height := float64(b.Dy()) * 72 / cover.DPI

	page, err := document.WriteSinglePage(w, &pdf.Rectangle{URx: width, URy: height}, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	page.PushGraphicsState()
	page.Transform(matrix.Scale(width, height))
	page.DrawXObject(&pdfimage.PNG{Data: flatten(img)})
	page.PopGraphicsState()
	return page.Close()
}
