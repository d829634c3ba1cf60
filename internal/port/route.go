package port

import (
	"context"

	"mediaup/internal/domain"
)

// ProgressFunc receives bytes-on-the-wire snapshots during a transfer.
// Purely observational; implementations must not block.
type ProgressFunc func(domain.ProgressEvent)

// UploadRoute is one way of getting an asset onto durable storage. The
// primary route authorizes a presigned PUT; the fallback route proxies the
// raw bytes through the server.
type UploadRoute interface {
	Upload(ctx context.Context, token string, bucket domain.BucketClass, asset *domain.MediaAsset, progress ProgressFunc) (*domain.UploadResult, error)
}
