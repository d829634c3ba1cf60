package transport

import (
	"context"

	"mediaup/internal/domain"
	"mediaup/internal/port"
)

// DirectRoute is the primary upload path: obtain a single-use presigned
// session from the authorizer, then PUT straight to storage. It implements
// port.UploadRoute.
type DirectRoute struct {
	authorizer port.Authorizer
	engine     *Engine
}

// NewDirectRoute creates the primary route.
func NewDirectRoute(authorizer port.Authorizer, engine *Engine) *DirectRoute {
	return &DirectRoute{authorizer: authorizer, engine: engine}
}

func (r *DirectRoute) Upload(ctx context.Context, token string, bucket domain.BucketClass, asset *domain.MediaAsset, progress port.ProgressFunc) (*domain.UploadResult, error) {
	sess, err := r.authorizer.Authorize(ctx, token, port.AuthorizeRequest{
		Bucket:   bucket,
		Filename: asset.Filename,
		MIME:     asset.MIME,
		Size:     asset.Size,
	})
	if err != nil {
		return nil, err
	}

	if err := r.engine.Put(ctx, sess, asset, progress); err != nil {
		return nil, err
	}

	return &domain.UploadResult{
		PublicURL: sess.PublicURL,
		ObjectKey: sess.ObjectKey,
		Attempts:  1,
	}, nil
}
