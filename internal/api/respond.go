package api

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "github.com/youruser/coverapp/internal/errors"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

// fail writes err as {"error", "code"}. Caller input errors are 400,
// generator failures 502 and everything else a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	code := apperr.GetCode(err)
	switch {
	case apperr.IsClientError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": apperr.UserMessage(err), "code": code})
	case code == apperr.ErrCodeUpstreamGeneration:
		h.logger.Warn("artwork generation failed", "err", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusBadGateway, gin.H{"error": apperr.UserMessage(err), "code": code})
	default:
		h.logger.Error("internal error", "err", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": apperr.ErrCodeInternal})
	}
}

// sendImage encodes img as f and sends it as an attachment named name.<ext>.
func (h *Handler) sendImage(c *gin.Context, img image.Image, f imagepkg.Format, name string) {
	var buf bytes.Buffer
	if err := imagepkg.Encode(&buf, img, f); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", name, f.Ext()))
	c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
}
