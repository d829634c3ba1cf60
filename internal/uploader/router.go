package uploader

import (
	"context"
	"errors"
	"log"

	"mediaup/internal/domain"
	"mediaup/internal/port"
)

// Router sends an operation down the primary (direct-to-storage) path and,
// when that path is unreachable as a whole, redirects it through the
// server-proxied fallback route. The fallback runs exactly once, pass or
// fail; it is never itself re-routed.
type Router struct {
	primary  *Coordinator
	fallback port.UploadRoute
	creds    port.CredentialSource
}

// NewRouter creates a Router over the retried primary path and the
// one-shot fallback route.
func NewRouter(primary *Coordinator, fallback port.UploadRoute, creds port.CredentialSource) *Router {
	return &Router{primary: primary, fallback: fallback, creds: creds}
}

func (r *Router) Upload(ctx context.Context, bucket domain.BucketClass, asset *domain.MediaAsset, progress port.ProgressFunc) (*domain.UploadResult, error) {
	result, err := r.primary.Run(ctx, bucket, asset, progress)
	if err == nil {
		return result, nil
	}

	var unavailable *domain.PathUnavailableError
	if !errors.As(err, &unavailable) {
		return nil, err
	}

	log.Printf("uploader.Router: primary path unavailable (%v), switching to proxy upload", err)

	token, err := r.creds.EnsureValid(ctx, r.primary.minValidity)
	if err != nil {
		return nil, err
	}
	return r.fallback.Upload(ctx, token, bucket, asset, progress)
}
