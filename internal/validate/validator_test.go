package validate_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"mediaup/internal/domain"
	"mediaup/internal/validate"
)

func asset(size int, mime, filename string) *domain.MediaAsset {
	return domain.NewMediaAsset(bytes.Repeat([]byte{0xAB}, size), mime, filename)
}

func TestValidator_Accept_PostImage(t *testing.T) {
	v := validate.New()

	err := v.Validate(asset(1024, "image/jpeg", "photo.jpg"), domain.BucketPostImage)

	assert.NoError(t, err)
}

func TestValidator_Reject_FileTooLarge_EchoesLimit(t *testing.T) {
	v := validate.New()

	err := v.Validate(asset(6*1024*1024, "image/jpeg", "big.jpg"), domain.BucketPostImage)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, int64(5*1024*1024), verr.Limit)
}

func TestValidator_CoverImage_LargerCeiling(t *testing.T) {
	v := validate.New()

	// 6MB is over the default image ceiling but under the cover ceiling.
	payload := asset(6*1024*1024, "image/jpeg", "cover.jpg")
	assert.Error(t, v.Validate(payload, domain.BucketPostImage))
	assert.NoError(t, v.Validate(payload, domain.BucketCoverImage))
}

func TestValidator_Reject_UnknownMIMEAndExtension(t *testing.T) {
	v := validate.New()

	err := v.Validate(asset(100, "application/octet-stream", "payload.bin"), domain.BucketPostImage)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidator_ExtensionAdvisory_WhenMIMEMissing(t *testing.T) {
	v := validate.New()

	err := v.Validate(asset(100, "", "clip.mp4"), domain.BucketReelVideo)

	assert.NoError(t, err)
}

func TestValidator_Reject_VideoMIMEForImageClass(t *testing.T) {
	v := validate.New()

	err := v.Validate(asset(100, "video/mp4", "clip.mp4"), domain.BucketAvatar)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidator_Reject_UnknownBucketClass(t *testing.T) {
	v := validate.New()

	err := v.Validate(asset(100, "image/png", "a.png"), domain.BucketClass("banner"))

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidator_MIMEParameters_Stripped(t *testing.T) {
	v := validate.New()

	err := v.Validate(asset(100, "image/jpeg; charset=binary", "photo.jpg"), domain.BucketPostImage)

	assert.NoError(t, err)
}

func TestValidator_ReelVideo_CeilingAt200MB(t *testing.T) {
	v := validate.New()

	over := &domain.MediaAsset{MIME: "video/mp4", Filename: "reel.mp4", Size: 200*1024*1024 + 1}
	err := v.Validate(over, domain.BucketReelVideo)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, int64(200*1024*1024), verr.Limit)
}
