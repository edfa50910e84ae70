package api

import (
	"context"
	"image"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/artwork"
	"github.com/youruser/coverapp/internal/cover"
	apperr "github.com/youruser/coverapp/internal/errors"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

// generateCover composes a full cover. Each side's artwork comes from an
// uploaded file, else a URL, else a prompt; a side with none of them, or
// whose prompt produced no image, gets the placeholder.
func (h *Handler) generateCover(c *gin.Context) {
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

	front, frontPrompt, err := h.artworkSource(c, "front")
	if err != nil {
		h.fail(c, err)
		return
	}
	back, backPrompt, err := h.artworkSource(c, "back")
	if err != nil {
		h.fail(c, err)
		return
	}

	if frontPrompt != "" || backPrompt != "" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.GenerateTimeout)
		defer cancel()
		genFront, genBack, err := artwork.GeneratePair(ctx, h.gen, frontPrompt, backPrompt)
		if err != nil {
			if apperr.GetCode(err) == "" {
				err = apperr.Wrap(apperr.ErrCodeUpstreamGeneration, err, "artwork generation failed")
			}
			h.fail(c, err)
			return
		}
		if front == nil {
			front = genFront
		}
		if back == nil {
			back = genBack
		}
		h.logger.Debug("artwork generated", "front", genFront != nil, "back", genBack != nil,
			"request_id", c.GetString(requestIDKey))
	}

	img, err := imagepkg.ComposeCover(spec, cover.ComputeLayout(spec), front, back, opts...)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.sendImage(c, img, h.format(c), "Full_Cover")
}

// artworkSource returns the uploaded or downloaded image for side, or the
// prompt to generate it from when neither is given.
func (h *Handler) artworkSource(c *gin.Context, side string) (image.Image, string, error) {
	img, err := h.formImage(c, side+"_image")
	if err != nil || img != nil {
		return img, "", err
	}
	if url := param(c, side+"_url"); url != "" {
		img, err := imagepkg.DownloadImage(c.Request.Context(), url, h.cfg.MaxPixels)
		return img, "", err
	}
	prompt := param(c, side+"_prompt")
	if n := utf8.RuneCountInString(prompt); n > artwork.MaxPromptLength {
		return nil, "", apperr.New(apperr.ErrCodeInvalidParameter,
			"%s_prompt is %d characters, the limit is %d", side, n, artwork.MaxPromptLength)
	}
	return nil, prompt, nil
}
