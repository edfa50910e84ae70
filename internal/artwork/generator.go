// Package artwork produces panel artwork from text prompts.
//
// A Generator is constructed once in main and injected into the HTTP
// handler. The Gemini implementation talks to the Gemini API; Cached wraps
// any Generator with rate limiting and memoization so that concurrent
// requests share one upstream budget.
package artwork

import (
	"bytes"
	"context"
	"errors"
	"image"

	apperr "github.com/youruser/coverapp/internal/errors"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

// Generator turns a prompt into an image.
//
// Implementations return an error with code
// apperr.ErrCodeUpstreamGeneration when no image came back, so callers can
// tell "nothing generated" apart from transport failures with
// IsNoImage.
type Generator interface {
	Generate(ctx context.Context, prompt string) (image.Image, error)
}

// ErrNoImage reports that the upstream answered without image data.
var ErrNoImage = apperr.New(apperr.ErrCodeUpstreamGeneration, "no image returned")

// IsNoImage reports whether err means the generator returned no image.
func IsNoImage(err error) bool {
	return errors.Is(err, ErrNoImage)
}

// Disabled is used when no API key is configured. Every prompt yields
// ErrNoImage, which callers treat as "no artwork supplied".
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (image.Image, error) {
	return nil, ErrNoImage
}

// decodeInline decodes an inline image payload returned by the upstream.
func decodeInline(data []byte) (image.Image, error) {
	img, err := imagepkg.DecodeImage(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeUpstreamGeneration, err, "generated image is not decodable")
	}
	return img, nil
}
