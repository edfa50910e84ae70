// Package cover holds the panel geometry shared by compositing and
// extraction: panel specs, panel kinds and the back/spine/front layout.
package cover

import (
	"math"

	apperr "github.com/youruser/coverapp/internal/errors"
)

// DPI converts the physical spine thickness to pixels.
const DPI = 300

const (
	// MaxDimension bounds panel width, panel height and spine pixels, so
	// layout arithmetic cannot overflow.
	MaxDimension = 1 << 16

	// MaxPixels bounds the composite area. Callers may enforce a lower
	// budget with CheckPixels.
	MaxPixels int64 = 1 << 28
)

// PanelSpec is the nominal geometry of a cover. Front and back panels share
// width and height; the spine sits between them.
type PanelSpec struct {
	PanelWidth           int     `json:"panel_width" toml:"width"`
	PanelHeight          int     `json:"panel_height" toml:"height"`
	SpineThicknessInches float64 `json:"spine_thickness" toml:"spine_thickness"`
}

// NewPanelSpec builds a spec and validates it.
func NewPanelSpec(width, height int, spineThickness float64) (PanelSpec, error) {
	s := PanelSpec{PanelWidth: width, PanelHeight: height, SpineThicknessInches: spineThickness}
	if err := s.Validate(); err != nil {
		return PanelSpec{}, err
	}
	return s, nil
}

// Validate rejects non-positive dimensions, non-finite thickness, and
// geometry whose composite would exceed MaxDimension or MaxPixels.
func (s PanelSpec) Validate() error {
	if s.PanelWidth <= 0 || s.PanelWidth > MaxDimension {
		return apperr.New(apperr.ErrCodeInvalidParameter, "width must be between 1 and %d, got %d", MaxDimension, s.PanelWidth)
	}
	if s.PanelHeight <= 0 || s.PanelHeight > MaxDimension {
		return apperr.New(apperr.ErrCodeInvalidParameter, "height must be between 1 and %d, got %d", MaxDimension, s.PanelHeight)
	}
	t := s.SpineThicknessInches
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return apperr.New(apperr.ErrCodeInvalidParameter, "spine_thickness must be a positive number of inches, got %v", t)
	}
	if t*DPI > MaxDimension {
		return apperr.New(apperr.ErrCodeInvalidParameter,
			"spine_thickness must be at most %g inches, got %v", float64(MaxDimension)/DPI, t)
	}
	return s.CheckPixels(MaxPixels)
}

// Pixels is the composite area, TotalWidth × PanelHeight. It is only
// meaningful for a spec whose dimensions are within MaxDimension.
func (s PanelSpec) Pixels() int64 {
	return int64(s.TotalWidth()) * int64(s.PanelHeight)
}

// CheckPixels rejects a spec whose composite area exceeds limit.
func (s PanelSpec) CheckPixels(limit int64) error {
	if p := s.Pixels(); p > limit {
		return apperr.New(apperr.ErrCodeInvalidParameter,
			"cover of %dx%d pixels exceeds the limit of %d pixels", s.TotalWidth(), s.PanelHeight, limit)
	}
	return nil
}

// SpinePixels is round(SpineThicknessInches × DPI).
func (s PanelSpec) SpinePixels() int {
	return int(math.Round(s.SpineThicknessInches * DPI))
}

// TotalWidth is the nominal composite width, 2·PanelWidth + SpinePixels.
func (s PanelSpec) TotalWidth() int {
	return 2*s.PanelWidth + s.SpinePixels()
}
