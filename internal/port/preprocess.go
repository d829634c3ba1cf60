package port

import (
	"context"

	"mediaup/internal/domain"
)

// VideoPreprocessor probes video metadata and extracts cover thumbnails.
// Both operations are read-only with respect to the original asset.
type VideoPreprocessor interface {
	Probe(ctx context.Context, asset *domain.MediaAsset) (*domain.VideoInfo, error)
	Thumbnail(ctx context.Context, asset *domain.MediaAsset, duration float64) (*domain.MediaAsset, error)
}
