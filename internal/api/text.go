package api

import (
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	apperr "github.com/youruser/coverapp/internal/errors"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

const (
	defaultFontSize  = 24
	defaultTextColor = "#000000"
	maxFontSize      = 512
)

// addText draws text at (x, y) on the uploaded image, or on a blank white
// panel of the requested width and height when no file is sent.
func (h *Handler) addText(c *gin.Context) {
	text := c.PostForm("text")
	if text == "" {
		h.fail(c, apperr.New(apperr.ErrCodeInvalidParameter, "text is required"))
		return
	}
	x, err := intParam("x", param(c, "x"), 0, true)
	if err != nil {
		h.fail(c, err)
		return
	}
	y, err := intParam("y", param(c, "y"), 0, true)
	if err != nil {
		h.fail(c, err)
		return
	}
	size := float64(defaultFontSize)
	if s := param(c, "font_size"); s != "" {
		if size, err = strconv.ParseFloat(s, 64); err != nil {
			h.fail(c, apperr.New(apperr.ErrCodeInvalidParameter, "font_size must be a number, got %q", s))
			return
		}
		if size > maxFontSize {
			h.fail(c, apperr.New(apperr.ErrCodeInvalidParameter, "font_size must be at most %d, got %v", maxFontSize, size))
			return
		}
	}
	colorHex := param(c, "color")
	if colorHex == "" {
		colorHex = defaultTextColor
	}
	col, err := imagepkg.ParseHexColor(colorHex)
	if err != nil {
		h.fail(c, err)
		return
	}

	img, err := h.formImage(c, "file")
	if err != nil {
		h.fail(c, err)
		return
	}
	if img == nil {
		spec, err := h.panelSpec(c)
		if err != nil {
			h.fail(c, err)
			return
		}
		img = imaging.New(spec.PanelWidth, spec.PanelHeight, color.White)
	}
	out, err := imagepkg.DrawText(img, text, x, y, size, col)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.sendImage(c, out, h.format(c), "Text_Cover")
}
