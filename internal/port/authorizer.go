package port

import (
	"context"

	"mediaup/internal/domain"
)

// AuthorizeRequest carries what the client declares about the object it
// wants to write.
type AuthorizeRequest struct {
	Bucket   domain.BucketClass `json:"bucket"`
	Filename string             `json:"filename"`
	MIME     string             `json:"content_type"`
	Size     int64              `json:"size"`
}

// Authorizer obtains a time-boxed, single-object write grant from the
// external authorization endpoint.
type Authorizer interface {
	Authorize(ctx context.Context, token string, req AuthorizeRequest) (*domain.UploadSession, error)
}
