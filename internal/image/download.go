package imagepkg

import (
	"bytes"
	"context"
	"image"

	apperr "github.com/youruser/coverapp/internal/errors"
	"github.com/youruser/coverapp/internal/util"
)

// DownloadImage downloads an image from url and decodes it, rejecting
// images larger than maxPixels.
func DownloadImage(ctx context.Context, url string, maxPixels int64) (image.Image, error) {
	body, err := util.GetBytes(ctx, url)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidParameter, err, "cannot download image from %s", url)
	}
	return DecodeImageLimit(bytes.NewReader(body), maxPixels)
}
