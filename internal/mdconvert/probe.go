package mdconvert

import (
	"image"
	"os"
	"path/filepath"

	// Registered decoders for image header probing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// probeImageSize reads the intrinsic pixel dimensions of a referenced
// image file. Missing or undecodable files yield (0, 0); the autofit stage
// skips such images instead of guessing a size.
func probeImageSize(baseDir, ref string) (width, height int) {
	if ref == "" {
		return 0, 0
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	f, err := os.Open(path) // #nosec G304 -- image path comes from the user's document
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
