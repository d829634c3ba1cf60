package preprocess

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"mediaup/internal/domain"
)

// ImageOptions controls the client-side image transform.
type ImageOptions struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// DefaultQuality is the JPEG re-encode quality used when none is configured.
const DefaultQuality = 85

// FitImage decodes the asset, scales it down to fit within the bounding box
// (aspect ratio preserved, never upscaled) and re-encodes it as JPEG to
// normalize downstream storage. The input asset is never modified; the
// derivative is returned as a new asset.
func FitImage(asset *domain.MediaAsset, opts ImageOptions) (*domain.MediaAsset, error) {
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}

	img, err := imaging.Decode(bytes.NewReader(asset.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image %q: %w", asset.Filename, err)
	}

	bounds := img.Bounds()
	if opts.MaxWidth > 0 && opts.MaxHeight > 0 &&
		(bounds.Dx() > opts.MaxWidth || bounds.Dy() > opts.MaxHeight) {
		img = imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return nil, fmt.Errorf("encoding image %q: %w", asset.Filename, err)
	}

	return domain.NewMediaAsset(buf.Bytes(), "image/jpeg", jpegName(asset.Filename)), nil
}

// jpegName swaps the filename extension for .jpg.
func jpegName(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return name + ".jpg"
	}
	return strings.TrimSuffix(name, ext) + ".jpg"
}
