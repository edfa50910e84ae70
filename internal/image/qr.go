package imagepkg

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// minQRSize is the smallest QR code, in pixels, placed on a back panel.
const minQRSize = 64

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, size)
}

// GenerateQRImage returns an image.Image for further composition.
// The image may be larger than size when text needs more modules.
func GenerateQRImage(text string, size int) (image.Image, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return q.Image(size), nil
}
