package artwork

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	apperr "github.com/youruser/coverapp/internal/errors"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash-preview-image-generation"

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini generates artwork with the Gemini API.
type Gemini struct {
	models contentGenerator
	model  string
	logger *log.Logger
}

// NewGemini creates a Gemini generator authenticated with apiKey.
func NewGemini(ctx context.Context, apiKey, model string, logger *log.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "creating gemini client")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: client.Models, model: model, logger: logger}, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string { return g.model }

// Generate asks the model for an image and returns the first inline image
// in the response.
func (g *Gemini) Generate(ctx context.Context, prompt string) (image.Image, error) {
	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeUpstreamGeneration, err, "gemini request failed")
	}

	data, ok := firstInlineImage(resp)
	if !ok {
		g.logger.Warn("gemini returned no image", "model", g.model, "duration", time.Since(start).Round(time.Millisecond))
		return nil, ErrNoImage
	}
	g.logger.Debug("gemini image generated", "model", g.model, "bytes", len(data), "duration", time.Since(start).Round(time.Millisecond))
	return decodeInline(data)
}

func firstInlineImage(resp *genai.GenerateContentResponse) ([]byte, bool) {
	if resp == nil {
		return nil, false
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, true
			}
		}
	}
	return nil, false
}
