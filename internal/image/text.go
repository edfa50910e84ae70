package imagepkg

import (
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	apperr "github.com/youruser/coverapp/internal/errors"
)

// MinLabelHeight is the narrowest spine, in pixels, that gets a label.
const MinLabelHeight = 12

const (
	maxLabelSize = 120.0
	minTextSize  = 6.0
)

var (
	boldFont     *opentype.Font
	boldFontErr  error
	boldFontOnce sync.Once
)

// fontLoader returns the face used for labels and free text.
var fontLoader = loadFont

func loadFont() (*opentype.Font, error) {
	boldFontOnce.Do(func() {
		boldFont, boldFontErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, boldFontErr
}

func newFace(size float64) (font.Face, error) {
	f, err := fontLoader()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// measureText returns the advance width and line height of s at size.
func measureText(s string, size float64) (int, int, error) {
	face, err := newFace(size)
	if err != nil {
		return 0, 0, err
	}
	defer face.Close()
	m := face.Metrics()
	return font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil(), nil
}

// renderText draws one line of s on a transparent image sized to fit it.
func renderText(s string, size float64, c color.Color) (*image.NRGBA, error) {
	face, err := newFace(size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	m := face.Metrics()
	d := &font.Drawer{Face: face}
	w := d.MeasureString(s).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	if w <= 0 || h <= 0 {
		return nil, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	d.Dst = dst
	d.Src = image.NewUniform(c)
	d.Dot = fixed.Point26_6{Y: m.Ascent}
	d.DrawString(s)
	return dst, nil
}

// fitSpineLabel renders label rotated to run down a spine spineWidth pixels
// wide and panelHeight tall. It returns nil when the label cannot fit and
// an error only when the font cannot be loaded or rendered.
func fitSpineLabel(label string, spineWidth, panelHeight int, c color.Color) (*image.NRGBA, error) {
	if spineWidth < MinLabelHeight {
		return nil, nil
	}
	size := math.Min(float64(spineWidth)*0.6, maxLabelSize)
	w, _, err := measureText(label, size)
	if err != nil {
		return nil, err
	}
	if w == 0 {
		return nil, nil
	}
	margin := panelHeight / 20
	if avail := panelHeight - 2*margin; w > avail {
		size *= float64(avail) / float64(w)
	}
	if size < minTextSize {
		return nil, nil
	}

	img, err := renderText(label, size, c)
	if err != nil || img == nil {
		return nil, err
	}
	if img.Bounds().Dy() > spineWidth || img.Bounds().Dx() > panelHeight {
		return nil, nil
	}
	return imaging.Rotate270(img), nil
}

// DrawText returns a copy of img with text drawn with its top-left corner
// at (x, y). Lines are separated by '\n'.
func DrawText(img image.Image, text string, x, y int, size float64, c color.Color) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, apperr.New(apperr.ErrCodeImageDecode, "image has no pixels")
	}
	if size < 1 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, apperr.New(apperr.ErrCodeInvalidParameter, "font_size must be at least 1, got %v", size)
	}

	out := imaging.Clone(img)
	for _, line := range strings.Split(text, "\n") {
		rendered, err := renderText(line, size, c)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "rendering text")
		}
		if rendered != nil {
			out = imaging.Overlay(out, rendered, image.Pt(x, y), 1.0)
			y += rendered.Bounds().Dy()
		} else {
			y += int(size)
		}
	}
	return out, nil
}
