package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/youruser/coverapp/internal/cover"
	apperr "github.com/youruser/coverapp/internal/errors"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

var titleCase = cases.Title(language.Und)

// downloadPart extracts the panel named by the part_type field (default front).
func (h *Handler) downloadPart(c *gin.Context) {
	part := param(c, "part_type")
	if part == "" {
		part = string(cover.Front)
	}
	h.extract(c, part)
}

func (h *Handler) downloadKind(k cover.PanelKind) gin.HandlerFunc {
	return func(c *gin.Context) { h.extract(c, string(k)) }
}

func (h *Handler) extract(c *gin.Context, part string) {
	kind, err := cover.ParsePanelKind(part)
	if err != nil {
		h.fail(c, err)
		return
	}
	spec, err := h.panelSpec(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	strict := h.cfg.StrictExtract
	if s := param(c, "strict"); s != "" {
		if strict, err = strconv.ParseBool(s); err != nil {
			h.fail(c, apperr.New(apperr.ErrCodeInvalidParameter, "strict must be a boolean, got %q", s))
			return
		}
	}

	img, err := h.formImage(c, "file")
	if err != nil {
		h.fail(c, err)
		return
	}
	if img == nil {
		h.fail(c, apperr.New(apperr.ErrCodeInvalidParameter, "file is required"))
		return
	}
	b := img.Bounds()
	if err := cover.CheckDimensions(b.Dx(), b.Dy(), spec, strict); err != nil {
		h.fail(c, err)
		return
	}

	panel, err := imagepkg.ExtractPanel(img, kind, spec)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.sendImage(c, panel, h.format(c), titleCase.String(string(kind))+"_Cover")
}
