package domain

import (
	"time"
)

// MediaAsset is the raw upload input: payload bytes plus what the caller
// declared about them. Immutable once accepted by the validator;
// preprocessing returns a new asset rather than mutating in place.
type MediaAsset struct {
	Data     []byte
	MIME     string
	Size     int64
	Filename string
}

// NewMediaAsset builds an asset from caller-selected bytes.
func NewMediaAsset(data []byte, mime, filename string) *MediaAsset {
	return &MediaAsset{
		Data:     data,
		MIME:     mime,
		Size:     int64(len(data)),
		Filename: filename,
	}
}

// UploadSession is a server-issued, time-boxed, single-use write grant:
// one PUT of one object. A session consumed by a failed transfer must be
// re-requested, never retried verbatim.
type UploadSession struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProgressEvent is a bytes-on-the-wire snapshot emitted to the caller.
type ProgressEvent struct {
	Sent  int64
	Total int64
}

// UploadResult is the terminal success of one upload operation.
type UploadResult struct {
	PublicURL string
	ObjectKey string
	Attempts  int
}

// VideoInfo holds metadata probed from a video payload without modifying it.
type VideoInfo struct {
	Duration float64
	Width    int
	Height   int
}

// RetryState tracks one operation's progress through the retry budget.
// Owned exclusively by the coordinator; never shared across operations.
type RetryState struct {
	Attempt   int
	LastErr   error
	StartedAt time.Time
}

// Elapsed returns time spent in the operation so far.
func (s *RetryState) Elapsed() time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	return time.Since(s.StartedAt)
}
