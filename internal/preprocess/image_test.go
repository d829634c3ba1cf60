package preprocess_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"

	"mediaup/internal/domain"
	"mediaup/internal/preprocess"
)

// pngAsset renders a solid-color PNG of the given dimensions.
func pngAsset(t *testing.T, width, height int) *domain.MediaAsset {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return domain.NewMediaAsset(buf.Bytes(), "image/png", "source.png")
}

func decodedBounds(t *testing.T, asset *domain.MediaAsset) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(asset.Data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestFitImage_DownscalesToBounds_PreservingAspect(t *testing.T) {
	src := pngAsset(t, 4000, 2000)

	out, err := preprocess.FitImage(src, preprocess.ImageOptions{MaxWidth: 1920, MaxHeight: 1080})

	assert.NoError(t, err)
	w, h := decodedBounds(t, out)
	assert.LessOrEqual(t, w, 1920)
	assert.LessOrEqual(t, h, 1080)
	assert.InDelta(t, 2.0, float64(w)/float64(h), 0.01)
}

func TestFitImage_SmallImage_NotUpscaled(t *testing.T) {
	src := pngAsset(t, 300, 200)

	out, err := preprocess.FitImage(src, preprocess.ImageOptions{MaxWidth: 1920, MaxHeight: 1080})

	assert.NoError(t, err)
	w, h := decodedBounds(t, out)
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)
}

func TestFitImage_NormalizesToJPEG(t *testing.T) {
	src := pngAsset(t, 64, 64)

	out, err := preprocess.FitImage(src, preprocess.ImageOptions{MaxWidth: 512, MaxHeight: 512})

	assert.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.MIME)
	assert.Equal(t, "source.jpg", out.Filename)
	// JPEG SOI marker
	assert.Equal(t, []byte{0xFF, 0xD8}, out.Data[:2])
}

func TestFitImage_OriginalUnmodified(t *testing.T) {
	src := pngAsset(t, 100, 100)
	originalLen := len(src.Data)
	originalMIME := src.MIME

	_, err := preprocess.FitImage(src, preprocess.ImageOptions{MaxWidth: 50, MaxHeight: 50})

	assert.NoError(t, err)
	assert.Equal(t, originalLen, len(src.Data))
	assert.Equal(t, originalMIME, src.MIME)
}

func TestFitImage_RejectsGarbage(t *testing.T) {
	src := domain.NewMediaAsset([]byte("not an image"), "image/png", "bad.png")

	_, err := preprocess.FitImage(src, preprocess.ImageOptions{MaxWidth: 512, MaxHeight: 512})

	assert.Error(t, err)
}
