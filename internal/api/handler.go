// Package api exposes the cover engines over HTTP.
package api

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/artwork"
	"github.com/youruser/coverapp/internal/config"
	"github.com/youruser/coverapp/internal/cover"
	apperr "github.com/youruser/coverapp/internal/errors"
	imagepkg "github.com/youruser/coverapp/internal/image"
	"github.com/youruser/coverapp/internal/presets"
)

const (
	defaultQRText = "coverapp"
	defaultQRSize = 400
	maxQRSize     = 2048
)

// Handler serves the cover endpoints. It is safe for concurrent use.
type Handler struct {
	cfg     config.Config
	gen     artwork.Generator
	presets []presets.Preset
	logger  *log.Logger
}

func NewHandler(cfg config.Config, gen artwork.Generator, ps []presets.Preset, logger *log.Logger) *Handler {
	if gen == nil {
		gen = artwork.Disabled{}
	}
	return &Handler{cfg: cfg, gen: gen, presets: ps, logger: logger}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "generation": h.cfg.GenerationEnabled()})
}

func (h *Handler) listPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": len(h.presets), "presets": h.presets})
}

func (h *Handler) layout(c *gin.Context) {
	spec, err := h.panelSpec(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"spec":         spec,
		"dpi":          cover.DPI,
		"spine_pixels": spec.SpinePixels(),
		"total_width":  spec.TotalWidth(),
		"layout":       cover.ComputeLayout(spec),
	})
}

// canvas renders the placeholder composite, optionally with a spine label.
func (h *Handler) canvas(c *gin.Context) {
	spec, err := h.panelSpec(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	opts, err := composeOptions(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	img, err := imagepkg.BlankCover(spec, opts...)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.sendImage(c, img, h.format(c), "Canvas")
}

// qr endpoint returns a PNG of a QR for "text" query param
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = defaultQRText
	}
	size := defaultQRSize
	if s := c.Query("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 || v > maxQRSize {
			h.fail(c, apperr.New(apperr.ErrCodeInvalidParameter, "size must be between 1 and %d, got %q", maxQRSize, s))
			return
		}
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		h.fail(c, apperr.Wrap(apperr.ErrCodeInvalidParameter, err, "cannot encode text as a QR code"))
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
