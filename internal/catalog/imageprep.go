package catalog

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// imageExtensions lists the file types accepted for recipe import.
var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// PrepareImage validates an image by extension and downscales it to at most
// maxWidth pixels wide, keeping the aspect ratio and the original format.
// Images already narrow enough are returned untouched. A maxWidth of 0
// disables resizing.
func PrepareImage(filename string, data []byte, maxWidth uint) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return nil, fmt.Errorf("%w: %q (want .jpg, .jpeg or .png)", domain.ErrUnsupportedImage, filename)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", filename, err)
	}
	if maxWidth == 0 || uint(cfg.Width) <= maxWidth {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", filename, err)
	}
	img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch ext {
	case ".jpeg", ".jpg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	case ".png":
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding image %s: %w", filename, err)
	}
	return buf.Bytes(), nil
}
