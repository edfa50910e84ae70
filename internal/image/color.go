package imagepkg

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	apperr "github.com/youruser/coverapp/internal/errors"
)

// ParseHexColor parses "#rrggbb" or "#rgb"; the leading '#' is optional.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, apperr.Wrap(apperr.ErrCodeInvalidParameter, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
