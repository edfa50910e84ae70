package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/youruser/coverapp/internal/cover"
	apperr "github.com/youruser/coverapp/internal/errors"
)

// placeholder is the fill drawn for a panel without artwork.
type placeholder struct {
	fill   color.NRGBA
	border color.NRGBA
}

const placeholderBorder = 2

var (
	backPlaceholder  = placeholder{fill: mustHex("#E3F2FD"), border: mustHex("#1976D2")}
	frontPlaceholder = placeholder{fill: mustHex("#E8F5E8"), border: mustHex("#388E3C")}
)

type composeOptions struct {
	spineLabel string
	spineColor color.NRGBA
	labelColor color.NRGBA
	qrText     string
}

// ComposeOption configures ComposeCover.
type ComposeOption func(*composeOptions)

// WithSpineLabel draws s along the spine, reading top to bottom.
// The label is dropped when the spine is too narrow to hold it.
func WithSpineLabel(s string) ComposeOption {
	return func(o *composeOptions) { o.spineLabel = s }
}

// WithSpineColors sets the spine fill and label colors (default black on white).
func WithSpineColors(fill, label color.Color) ComposeOption {
	return func(o *composeOptions) {
		o.spineColor = color.NRGBAModel.Convert(fill).(color.NRGBA)
		o.labelColor = color.NRGBAModel.Convert(label).(color.NRGBA)
	}
}

// WithBackQR places a QR code encoding text in the bottom-right corner of
// the back panel.
func WithBackQR(text string) ComposeOption {
	return func(o *composeOptions) { o.qrText = text }
}

// ComposeCover renders the back, spine and front panels of layout onto a
// single canvas. A nil front or back image is replaced by a placeholder
// fill; supplied images are resized to the panel size with Lanczos
// resampling. The inputs are not modified.
func ComposeCover(spec cover.PanelSpec, layout cover.Layout, front, back image.Image, opts ...ComposeOption) (*image.NRGBA, error) {
	o := composeOptions{
		spineColor: color.NRGBA{A: 0xff},
		labelColor: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkSource("front", front); err != nil {
		return nil, err
	}
	if err := checkSource("back", back); err != nil {
		return nil, err
	}

	h := spec.PanelHeight
	canvas := imaging.New(layout.TotalWidth(), h, color.White)
	canvas = paintPanel(canvas, back, layout.Back, h, backPlaceholder)
	canvas = paintPanel(canvas, front, layout.Front, h, frontPlaceholder)

	if !layout.Spine.Empty() {
		canvas = imaging.Paste(canvas, imaging.New(layout.Spine.Width(), h, o.spineColor), image.Pt(layout.Spine.Start, 0))
	}
	if o.spineLabel != "" {
		label, err := fitSpineLabel(o.spineLabel, layout.Spine.Width(), h, o.labelColor)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "rendering spine label")
		}
		if label != nil {
			lb := label.Bounds()
			pt := image.Pt(layout.Spine.Start+(layout.Spine.Width()-lb.Dx())/2, (h-lb.Dy())/2)
			canvas = imaging.Overlay(canvas, label, pt, 1.0)
		}
	}
	if o.qrText != "" {
		var err error
		if canvas, err = placeQR(canvas, o.qrText, layout.Back, h); err != nil {
			return nil, err
		}
	}
	return canvas, nil
}

// BlankCover renders the placeholder composite for spec.
func BlankCover(spec cover.PanelSpec, opts ...ComposeOption) (*image.NRGBA, error) {
	return ComposeCover(spec, cover.ComputeLayout(spec), nil, nil, opts...)
}

func checkSource(name string, img image.Image) error {
	if img == nil {
		return nil
	}
	if img.Bounds().Empty() {
		return apperr.New(apperr.ErrCodeImageDecode, "%s image has no pixels", name)
	}
	return nil
}

func paintPanel(canvas *image.NRGBA, src image.Image, r cover.Range, h int, ph placeholder) *image.NRGBA {
	w := r.Width()
	if w == 0 {
		return canvas
	}
	if src != nil {
		return imaging.Paste(canvas, imaging.Resize(src, w, h, imaging.Lanczos), image.Pt(r.Start, 0))
	}

	panel := imaging.New(w, h, ph.border)
	if w > 2*placeholderBorder && h > 2*placeholderBorder {
		inner := imaging.New(w-2*placeholderBorder, h-2*placeholderBorder, ph.fill)
		panel = imaging.Paste(panel, inner, image.Pt(placeholderBorder, placeholderBorder))
	}
	return imaging.Paste(canvas, panel, image.Pt(r.Start, 0))
}

func placeQR(canvas *image.NRGBA, text string, back cover.Range, h int) (*image.NRGBA, error) {
	size := min(back.Width(), h) / 5
	if size < minQRSize {
		return canvas, nil
	}
	q, err := GenerateQRImage(text, size)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidParameter, err, "cannot encode qr_text")
	}
	q = imaging.Resize(q, size, size, imaging.NearestNeighbor)
	margin := size / 8
	return imaging.Paste(canvas, q, image.Pt(back.End-size-margin, h-size-margin)), nil
}
