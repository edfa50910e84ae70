package api

import (
	"errors"
	"image"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/cover"
	apperr "github.com/youruser/coverapp/internal/errors"
	imagepkg "github.com/youruser/coverapp/internal/image"
	"github.com/youruser/coverapp/internal/presets"
)

// DefaultSpineThickness is used when a request omits spine_thickness.
const DefaultSpineThickness = 0.5

// param reads key from the form body, falling back to the query string.
func param(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(c.Query(key))
}

// panelSpec reads width, height and spine_thickness. A named preset (or
// the default preset when neither width nor height is given) supplies
// the panel size; explicit values override it.
func (h *Handler) panelSpec(c *gin.Context) (cover.PanelSpec, error) {
	ws, hs := param(c, "width"), param(c, "height")

	var base presets.Preset
	var havePreset bool
	if name := param(c, "preset"); name != "" && !strings.EqualFold(name, "custom") {
		p, ok := presets.Find(h.presets, name)
		if !ok {
			return cover.PanelSpec{}, apperr.New(apperr.ErrCodeInvalidParameter, "unknown preset %q", name)
		}
		base, havePreset = p, true
	} else if ws == "" && hs == "" {
		base, havePreset = presets.Default(h.presets)
	}

	width, err := intParam("width", ws, base.Width, havePreset)
	if err != nil {
		return cover.PanelSpec{}, err
	}
	height, err := intParam("height", hs, base.Height, havePreset)
	if err != nil {
		return cover.PanelSpec{}, err
	}

	thickness := DefaultSpineThickness
	if s := param(c, "spine_thickness"); s != "" {
		if thickness, err = strconv.ParseFloat(s, 64); err != nil {
			return cover.PanelSpec{}, apperr.New(apperr.ErrCodeInvalidParameter, "spine_thickness must be a number, got %q", s)
		}
	}
	spec, err := cover.NewPanelSpec(width, height, thickness)
	if err != nil {
		return cover.PanelSpec{}, err
	}
	if err := spec.CheckPixels(h.cfg.MaxPixels); err != nil {
		return cover.PanelSpec{}, err
	}
	return spec, nil
}

func intParam(name, s string, fallback int, haveFallback bool) (int, error) {
	if s == "" {
		if haveFallback {
			return fallback, nil
		}
		return 0, apperr.New(apperr.ErrCodeInvalidParameter, "%s is required", name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.New(apperr.ErrCodeInvalidParameter, "%s must be an integer, got %q", name, s)
	}
	return v, nil
}

// format reads the output format; unknown values fall back to PNG.
func (h *Handler) format(c *gin.Context) imagepkg.Format {
	raw := param(c, "format")
	f, ok := imagepkg.ParseFormat(raw)
	if !ok {
		h.logger.Debug("unknown output format, using png", "format", raw)
	}
	return f
}

// formImage decodes the uploaded file in field within the configured pixel
// budget. A missing file yields nil.
func (h *Handler) formImage(c *gin.Context, field string) (image.Image, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidParameter, err, "request body exceeds %d bytes", tooLarge.Limit)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidParameter, err, "cannot read %s", field)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidParameter, err, "cannot open %s", field)
	}
	defer f.Close()
	return imagepkg.DecodeImageLimit(f, h.cfg.MaxPixels)
}

// composeOptions reads spine_text, spine_color, spine_text_color and qr_text.
func composeOptions(c *gin.Context) ([]imagepkg.ComposeOption, error) {
	var opts []imagepkg.ComposeOption
	if s := param(c, "spine_text"); s != "" {
		opts = append(opts, imagepkg.WithSpineLabel(s))
	}
	fill, label := param(c, "spine_color"), param(c, "spine_text_color")
	if fill != "" || label != "" {
		fc, lc := "#000000", "#FFFFFF"
		if fill != "" {
			fc = fill
		}
		if label != "" {
			lc = label
		}
		f, err := imagepkg.ParseHexColor(fc)
		if err != nil {
			return nil, err
		}
		l, err := imagepkg.ParseHexColor(lc)
		if err != nil {
			return nil, err
		}
		opts = append(opts, imagepkg.WithSpineColors(f, l))
	}
	if s := param(c, "qr_text"); s != "" {
		opts = append(opts, imagepkg.WithBackQR(s))
	}
	return opts, nil
}
