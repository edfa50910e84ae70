package cover

import (
	"image"
	"math"

	apperr "github.com/youruser/coverapp/internal/errors"
)

// Range is a half-open pixel interval [Start, End) along the x-axis.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Width returns End-Start, or 0 for an inverted range.
func (r Range) Width() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range holds no pixels.
func (r Range) Empty() bool { return r.Width() == 0 }

// Layout places the three panels side by side: back, spine, front.
// The ranges are contiguous and together span [0, TotalWidth()).
type Layout struct {
	Back   Range `json:"back"`
	Spine  Range `json:"spine"`
	Front  Range `json:"front"`
	Height int   `json:"height"`
}

// ComputeLayout derives the nominal panel ranges of s.
// s is assumed valid; see PanelSpec.Validate.
func ComputeLayout(s PanelSpec) Layout {
	w := s.PanelWidth
	sp := s.SpinePixels()
	return Layout{
		Back:   Range{0, w},
		Spine:  Range{w, w + sp},
		Front:  Range{w + sp, 2*w + sp},
		Height: s.PanelHeight,
	}
}

// ScaledLayout derives panel ranges for a composite of s that is
// imageWidth pixels wide.
//
// When imageWidth equals the nominal width the nominal layout is returned.
// Otherwise panel and spine widths are multiplied by
// imageWidth/s.TotalWidth() and rounded, and the front range ends at
// imageWidth so rounding slack lands in the front panel. Only the x-axis is
// rescaled: Height stays s.PanelHeight.
func ScaledLayout(s PanelSpec, imageWidth int) Layout {
	expected := s.TotalWidth()
	if imageWidth == expected {
		return ComputeLayout(s)
	}
	scale := float64(imageWidth) / float64(expected)
	w := int(math.Round(float64(s.PanelWidth) * scale))
	sp := int(math.Round(float64(s.SpinePixels()) * scale))

	clamp := func(x int) int { return min(max(x, 0), max(imageWidth, 0)) }
	return Layout{
		Back:   Range{0, clamp(w)},
		Spine:  Range{clamp(w), clamp(w + sp)},
		Front:  Range{clamp(w + sp), clamp(imageWidth)},
		Height: s.PanelHeight,
	}
}

// TotalWidth is the width spanned by the three ranges.
func (l Layout) TotalWidth() int { return l.Front.End }

// Range returns the x range of the given panel.
func (l Layout) Range(kind PanelKind) (Range, error) {
	switch kind {
	case Back:
		return l.Back, nil
	case Spine:
		return l.Spine, nil
	case Front:
		return l.Front, nil
	}
	return Range{}, apperr.New(apperr.ErrCodeInvalidPanelKind, "invalid panel kind %q", string(kind))
}

// Rect returns the panel rectangle anchored at y=0 with the layout height.
func (l Layout) Rect(kind PanelKind) (image.Rectangle, error) {
	r, err := l.Range(kind)
	if err != nil {
		return image.Rectangle{}, err
	}
	return image.Rect(r.Start, 0, r.End, l.Height), nil
}

// CheckDimensions validates an uploaded composite before extraction.
// The height must always match; in strict mode the width must equal the
// nominal total as well. A lenient width mismatch is left to ScaledLayout.
func CheckDimensions(width, height int, s PanelSpec, strict bool) error {
	expected := s.TotalWidth()
	if height != s.PanelHeight || (strict && width != expected) {
		return apperr.New(apperr.ErrCodeDimensionMismatch,
			"image dimensions do not match expected cover size: expected %dx%d, got %dx%d",
			expected, s.PanelHeight, width, height)
	}
	return nil
}
