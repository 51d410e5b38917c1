package extraction

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DetectImageFormat decodes just the image header and returns the encoding
// name (png, jpeg, gif, bmp, tiff, webp).
func DetectImageFormat(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return "", fmt.Errorf("decode image: %s has zero dimensions", format)
	}
	return format, nil
}
