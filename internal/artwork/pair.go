package artwork

import (
	"context"
	"image"
	"strings"

	"golang.org/x/sync/errgroup"
)

// MaxPromptLength is the longest prompt accepted from callers.
const MaxPromptLength = 5000

// GeneratePair generates front and back artwork in parallel. An empty
// prompt, or an upstream answer without an image, leaves that side nil.
// Any other failure is returned.
func GeneratePair(ctx context.Context, gen Generator, frontPrompt, backPrompt string) (front, back image.Image, err error) {
	eg, egCtx := errgroup.WithContext(ctx)
	run := func(prompt string, dst *image.Image) {
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			return
		}
		eg.Go(func() error {
			img, err := gen.Generate(egCtx, prompt)
			if IsNoImage(err) {
				return nil
			}
			if err != nil {
				return err
			}
			*dst = img
			return nil
		})
	}
	run(frontPrompt, &front)
	run(backPrompt, &back)

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return front, back, nil
}
