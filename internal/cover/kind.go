package cover

import (
	"strings"

	apperr "github.com/youruser/coverapp/internal/errors"
)

// PanelKind selects one of the three cover panels.
type PanelKind string

const (
	Front PanelKind = "front"
	Back  PanelKind = "back"
	Spine PanelKind = "spine"
)

// Kinds lists the panels in left-to-right composite order.
var Kinds = []PanelKind{Back, Spine, Front}

// ParsePanelKind accepts "front", "back" or "spine" in any case.
func ParsePanelKind(s string) (PanelKind, error) {
	k := PanelKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", apperr.New(apperr.ErrCodeInvalidPanelKind, "invalid part_type %q: must be front, back or spine", s)
	}
	return k, nil
}

// Valid reports whether k is one of the three panels.
func (k PanelKind) Valid() bool {
	switch k {
	case Front, Back, Spine:
		return true
	}
	return false
}

func (k PanelKind) String() string { return string(k) }
