package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means the bearer session is missing or invalid.
	// Never retried by this subsystem; the caller must re-authenticate.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrThumbnailRequired means a mandatory video thumbnail could not be
	// produced for a class that cannot render without one.
	ErrThumbnailRequired = errors.New("thumbnail generation failed for a class that requires one")
)

// UploadStage names the pipeline stage an error originated from.
type UploadStage string

const (
	StageAuthorize UploadStage = "authorize"
	StageTransfer  UploadStage = "transfer"
)

// ValidationError rejects an asset before any network use. Limit carries
// the computed byte ceiling when the rejection is size-based.
type ValidationError struct {
	Reason string
	Limit  int64
}

func (e *ValidationError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("validation failed: %s (limit %d bytes)", e.Reason, e.Limit)
	}
	return "validation failed: " + e.Reason
}

// TransientError wraps a failure that may succeed if attempted again:
// network errors, timeouts, 5xx responses and signature-mismatch storage
// rejections.
type TransientError struct {
	Stage UploadStage
	Err   error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient %s failure: %v", e.Stage, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// ForbiddenError is a permission denial from storage during transfer.
// Retried once (credentials may have just turned over), then terminal.
type ForbiddenError struct {
	Err error
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("transfer forbidden: %v", e.Err)
}

func (e *ForbiddenError) Unwrap() error {
	return e.Err
}

// PathUnavailableError means the primary upload path is unreachable as a
// whole (authorizer connection refused, host unknown), as opposed to an
// individual attempt failing inside a reachable service.
type PathUnavailableError struct {
	Err error
}

func (e *PathUnavailableError) Error() string {
	return fmt.Sprintf("primary upload path unavailable: %v", e.Err)
}

func (e *PathUnavailableError) Unwrap() error {
	return e.Err
}

// ExhaustedError is returned when the retry budget is consumed. Cause is
// the last underlying failure, kept for diagnostics.
type ExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("upload failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err may resolve on a further attempt within
// the same upload operation.
func IsRetryable(err error) bool {
	var te *TransientError
	var fe *ForbiddenError
	return errors.As(err, &te) || errors.As(err, &fe)
}
