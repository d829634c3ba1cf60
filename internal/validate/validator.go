package validate

import (
	"fmt"
	"path/filepath"
	"strings"

	"mediaup/internal/domain"
)

// Validator enforces type and size policy for a bucket class before any
// network call is made.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// Validate checks asset against the class policy. A nil return means the
// asset is accepted for upload. Rejections never touch the network.
func (v *Validator) Validate(asset *domain.MediaAsset, bucket domain.BucketClass) error {
	if !bucket.Valid() {
		return &domain.ValidationError{Reason: fmt.Sprintf("unknown bucket class %q", bucket)}
	}

	mimeType, err := v.effectiveMIME(asset)
	if err != nil {
		return err
	}

	allowed := domain.AllowedImageTypes
	if bucket.Family() == domain.FamilyVideo {
		allowed = domain.AllowedVideoTypes
	}
	if !allowed[mimeType] {
		return &domain.ValidationError{
			Reason: fmt.Sprintf("%s not allowed for %s uploads", mimeType, bucket.Family()),
		}
	}

	if limit := bucket.MaxBytes(); asset.Size > limit {
		return &domain.ValidationError{
			Reason: fmt.Sprintf("%d bytes exceeds the %s ceiling", asset.Size, bucket),
			Limit:  limit,
		}
	}

	return nil
}

// effectiveMIME resolves the MIME type used for policy checks. The declared
// type wins when it names a known media type; otherwise a recognized file
// extension is treated as advisory. Neither known means rejection.
func (v *Validator) effectiveMIME(asset *domain.MediaAsset) (string, error) {
	declared := strings.ToLower(strings.TrimSpace(asset.MIME))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if domain.AllowedImageTypes[declared] || domain.AllowedVideoTypes[declared] {
		return declared, nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(asset.Filename), "."))
	if advisory, ok := domain.ExtensionTypes[ext]; ok {
		return advisory, nil
	}

	if declared == "" {
		return "", &domain.ValidationError{Reason: "no MIME type declared and no recognized extension"}
	}
	return "", &domain.ValidationError{Reason: fmt.Sprintf("unsupported media type %q", declared)}
}
