package cli

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	imagepkg "github.com/youruser/coverapp/internal/image"
	"github.com/youruser/coverapp/internal/util"
)

// readImage decodes the image at path. An empty path yields nil.
func readImage(path string) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := imagepkg.DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// writeImage encodes img to path. The format comes from formatName, or
// from the file extension when formatName is empty.
func writeImage(path string, img image.Image, formatName string) (imagepkg.Format, error) {
	if formatName == "" {
		formatName = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	f, _ := imagepkg.ParseFormat(formatName)
	var buf bytes.Buffer
	if err := imagepkg.Encode(&buf, img, f); err != nil {
		return f, err
	}
	return f, util.WriteFile(path, buf.Bytes())
}
