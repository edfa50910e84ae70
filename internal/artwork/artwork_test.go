package artwork

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	apperr "github.com/youruser/coverapp/internal/errors"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	prompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if cfg == nil || len(cfg.ResponseModalities) != 2 {
		return nil, errors.New("image modality not requested")
	}
	return f.resp, f.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestGeminiGenerate(t *testing.T) {
	fake := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "Here is your cover."},
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: pngBytes(t, 8, 12)}},
			}},
		}},
	}}
	g := &Gemini{models: fake, model: "test-model", logger: quietLogger()}

	img, err := g.Generate(context.Background(), "a lighthouse at dusk")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 12 {
		t.Errorf("bounds = %v, want 8x12", img.Bounds())
	}
	if fake.model != "test-model" || fake.prompt != "a lighthouse at dusk" {
		t.Errorf("request = %q/%q", fake.model, fake.prompt)
	}
}

func TestGeminiNoImage(t *testing.T) {
	fake := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: "I cannot draw that."}}}}},
	}}
	g := &Gemini{models: fake, model: DefaultModel, logger: quietLogger()}

	_, err := g.Generate(context.Background(), "x")
	if !IsNoImage(err) {
		t.Fatalf("error = %v, want ErrNoImage", err)
	}
	if !apperr.Is(err, apperr.ErrCodeUpstreamGeneration) {
		t.Errorf("code = %v, want UPSTREAM_GENERATION_FAILURE", apperr.GetCode(err))
	}
}

func TestGeminiUpstreamError(t *testing.T) {
	g := &Gemini{models: &fakeModels{err: errors.New("quota exceeded")}, model: DefaultModel, logger: quietLogger()}

	_, err := g.Generate(context.Background(), "x")
	if !apperr.Is(err, apperr.ErrCodeUpstreamGeneration) {
		t.Fatalf("error = %v, want UPSTREAM_GENERATION_FAILURE", err)
	}
	if IsNoImage(err) {
		t.Error("transport failure reported as no image")
	}
}

func TestGeminiUndecodableImage(t *testing.T) {
	fake := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("not png")}},
		}}}},
	}}
	g := &Gemini{models: fake, model: DefaultModel, logger: quietLogger()}

	if _, err := g.Generate(context.Background(), "x"); !apperr.Is(err, apperr.ErrCodeUpstreamGeneration) {
		t.Fatalf("error = %v, want UPSTREAM_GENERATION_FAILURE", err)
	}
}

func TestFirstInlineImageNil(t *testing.T) {
	if _, ok := firstInlineImage(nil); ok {
		t.Error("nil response yielded an image")
	}
	if _, ok := firstInlineImage(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{nil, {}}}); ok {
		t.Error("empty candidates yielded an image")
	}
}

type countingGenerator struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (c *countingGenerator) Generate(ctx context.Context, prompt string) (image.Image, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.err != nil {
		return nil, c.err
	}
	return image.NewUniform(color.Black), nil
}

func TestCachedMemoizes(t *testing.T) {
	next := &countingGenerator{delay: 20 * time.Millisecond}
	c := NewCached(next, 0, 1, time.Minute, time.Minute, "m")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Generate(context.Background(), "same prompt"); err != nil {
				t.Errorf("Generate: %v", err)
			}
		}()
	}
	wg.Wait()
	if _, err := c.Generate(context.Background(), "same prompt"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got := next.calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
}

func TestCachedDoesNotCacheFailures(t *testing.T) {
	next := &countingGenerator{err: ErrNoImage}
	c := NewCached(next, 0, 1, time.Minute, time.Minute, "m")

	for i := 0; i < 2; i++ {
		if _, err := c.Generate(context.Background(), "p"); !IsNoImage(err) {
			t.Fatalf("error = %v, want ErrNoImage", err)
		}
	}
	if got := next.calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
}

func TestCachedRespectsContext(t *testing.T) {
	next := &countingGenerator{}
	c := NewCached(next, time.Hour, 1, time.Minute, time.Minute, "m")

	if _, err := c.Generate(context.Background(), "first"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := c.Generate(ctx, "second"); err == nil {
		t.Error("rate-limited call succeeded despite expired context")
	}
}

func TestCachedSharedCallSurvivesCallerCancel(t *testing.T) {
	next := &countingGenerator{delay: 60 * time.Millisecond}
	c := NewCached(next, 0, 1, time.Minute, time.Minute, "m")

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Generate(firstCtx, "shared")
		firstErr <- err
	}()
	time.Sleep(10 * time.Millisecond)

	second := make(chan error, 1)
	go func() {
		_, err := c.Generate(context.Background(), "shared")
		second <- err
	}()
	time.Sleep(10 * time.Millisecond)
	cancelFirst()

	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("canceled caller error = %v, want context.Canceled", err)
	}
	if err := <-second; err != nil {
		t.Errorf("second caller error = %v, want nil", err)
	}
	if got := next.calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
}

func TestGeneratePair(t *testing.T) {
	gen := &countingGenerator{}

	front, back, err := GeneratePair(context.Background(), gen, "front art", "  ")
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if front == nil || back != nil {
		t.Errorf("front=%v back=%v, want front only", front, back)
	}
	if got := gen.calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestGeneratePairNoImageIsPlaceholder(t *testing.T) {
	front, back, err := GeneratePair(context.Background(), Disabled{}, "a", "b")
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if front != nil || back != nil {
		t.Error("disabled generator produced images")
	}
}

func TestGeneratePairSurfacesFailures(t *testing.T) {
	gen := &countingGenerator{err: apperr.New(apperr.ErrCodeUpstreamGeneration, "boom")}
	if _, _, err := GeneratePair(context.Background(), gen, "a", "b"); !apperr.Is(err, apperr.ErrCodeUpstreamGeneration) {
		t.Fatalf("error = %v, want UPSTREAM_GENERATION_FAILURE", err)
	}
}
