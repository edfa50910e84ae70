package imagepkg

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/youruser/coverapp/internal/cover"
	apperr "github.com/youruser/coverapp/internal/errors"
)

// ExtractPanel crops the panel kind out of a composite built from spec.
//
// The composite may have been resized since it was generated. When its
// width matches spec the nominal layout is used and the height must match
// too. Otherwise the panel boundaries are rescaled horizontally by
// cover.ScaledLayout while the crop height stays spec.PanelHeight.
func ExtractPanel(img image.Image, kind cover.PanelKind, spec cover.PanelSpec) (*image.NRGBA, error) {
	if !kind.Valid() {
		return nil, apperr.New(apperr.ErrCodeInvalidPanelKind, "invalid panel kind %q: must be front, back or spine", string(kind))
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, apperr.New(apperr.ErrCodeImageDecode, "image has no pixels")
	}

	b := img.Bounds()
	if b.Dx() == spec.TotalWidth() && b.Dy() != spec.PanelHeight {
		return nil, apperr.New(apperr.ErrCodeDimensionMismatch,
			"image height %d does not match panel height %d", b.Dy(), spec.PanelHeight)
	}

	layout := cover.ScaledLayout(spec, b.Dx())
	rect, err := layout.Rect(kind)
	if err != nil {
		return nil, err
	}
	rect = rect.Add(b.Min).Intersect(b)
	if rect.Empty() {
		return nil, apperr.New(apperr.ErrCodeDimensionMismatch,
			"%s panel is empty for a %dx%d image", kind, b.Dx(), b.Dy())
	}
	return imaging.Crop(img, rect), nil
}

// ExtractAll crops every panel, keyed by kind.
func ExtractAll(img image.Image, spec cover.PanelSpec) (map[cover.PanelKind]*image.NRGBA, error) {
	out := make(map[cover.PanelKind]*image.NRGBA, len(cover.Kinds))
	for _, k := range cover.Kinds {
		p, err := ExtractPanel(img, k, spec)
		if err != nil {
			return nil, err
		}
		out[k] = p
	}
	return out, nil
}
