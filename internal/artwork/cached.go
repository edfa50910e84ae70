package artwork

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const defaultCallTimeout = 2 * time.Minute

// Cached rate limits calls to another Generator and memoizes its images by
// prompt. Concurrent requests for the same prompt share one upstream call,
// which is detached from any single caller's cancellation and bounded by
// its own timeout.
type Cached struct {
	next    Generator
	limiter *rate.Limiter
	images  *cache.Cache
	group   singleflight.Group
	timeout time.Duration
	prefix  string
}

// NewCached wraps next. Upstream calls are spaced by interval with the given
// burst and each shared call may run for at most timeout; generated images
// are kept for ttl. keyPrefix separates cache entries of different models.
func NewCached(next Generator, interval time.Duration, burst int, ttl, timeout time.Duration, keyPrefix string) *Cached {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Cached{
		next:    next,
		limiter: rate.NewLimiter(limit, max(burst, 1)),
		images:  cache.New(ttl, 2*ttl),
		timeout: timeout,
		prefix:  keyPrefix,
	}
}

func (c *Cached) Generate(ctx context.Context, prompt string) (image.Image, error) {
	key := c.prefix + "\x00" + prompt
	if img, ok := c.images.Get(key); ok {
		return img.(image.Image), nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		if img, ok := c.images.Get(key); ok {
			return img, nil
		}
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		if err := c.limiter.Wait(callCtx); err != nil {
			return nil, err
		}
		img, err := c.next.Generate(callCtx, prompt)
		if err != nil {
			return nil, err
		}
		c.images.SetDefault(key, img)
		return img, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	img, ok := res.Val.(image.Image)
	if !ok {
		return nil, fmt.Errorf("unexpected return type from singleflight: %T", res.Val)
	}
	return img, nil
}
