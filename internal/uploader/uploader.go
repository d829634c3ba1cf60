package uploader

import (
	"context"
	"fmt"
	"log"

	"mediaup/internal/domain"
	"mediaup/internal/port"
	"mediaup/internal/preprocess"
	"mediaup/internal/validate"
)

// Transport executes one validated upload through whichever path the
// routing layer selects. *Router satisfies it.
type Transport interface {
	Upload(ctx context.Context, bucket domain.BucketClass, asset *domain.MediaAsset, progress port.ProgressFunc) (*domain.UploadResult, error)
}

// Options tunes a single upload operation.
type Options struct {
	// Progress receives bytes-on-the-wire snapshots. May be nil.
	Progress port.ProgressFunc

	// SkipPreprocess uploads the image payload as-is instead of fitting
	// and re-encoding it. Video probing is unaffected.
	SkipPreprocess bool
}

// VideoUploadResult carries the outcome of a video upload: the video
// object, the cover thumbnail when one was produced, and the probed
// metadata when the probe succeeded.
type VideoUploadResult struct {
	Video     *domain.UploadResult
	Thumbnail *domain.UploadResult
	Info      *domain.VideoInfo
}

// Uploader is the front door of the pipeline: validate, preprocess,
// then hand the asset to the routed transfer path.
type Uploader struct {
	validator *validate.Validator
	transport Transport
	video     port.VideoPreprocessor
	quality   int
}

// NewUploader wires the pipeline stages together. quality <= 0 falls back
// to the default JPEG re-encode quality.
func NewUploader(validator *validate.Validator, transport Transport, video port.VideoPreprocessor, quality int) *Uploader {
	if quality <= 0 {
		quality = preprocess.DefaultQuality
	}
	return &Uploader{
		validator: validator,
		transport: transport,
		video:     video,
		quality:   quality,
	}
}

// Upload runs one image upload end to end. The asset is validated before
// any network use, fitted to the class bounds unless preprocessing is
// skipped, and transferred with retries behind the transport.
func (u *Uploader) Upload(ctx context.Context, bucket domain.BucketClass, asset *domain.MediaAsset, opts Options) (*domain.UploadResult, error) {
	if err := u.validator.Validate(asset, bucket); err != nil {
		return nil, err
	}

	if bucket.Family() == domain.FamilyImage && !opts.SkipPreprocess {
		width, height := bucket.Bounds()
		fitted, err := preprocess.FitImage(asset, preprocess.ImageOptions{
			MaxWidth:  width,
			MaxHeight: height,
			Quality:   u.quality,
		})
		if err != nil {
			return nil, fmt.Errorf("preprocessing %q: %w", asset.Filename, err)
		}
		asset = fitted
	}

	return u.transport.Upload(ctx, bucket, asset, opts.Progress)
}

// UploadVideo runs one video upload: probe, extract a cover thumbnail,
// transfer the video, then transfer the thumbnail to the cover-image
// class. Thumbnail failures degrade to a video-only upload except for
// classes that cannot render without a cover.
func (u *Uploader) UploadVideo(ctx context.Context, bucket domain.BucketClass, asset *domain.MediaAsset, opts Options) (*VideoUploadResult, error) {
	if bucket.Family() != domain.FamilyVideo {
		return nil, &domain.ValidationError{Reason: fmt.Sprintf("%s is not a video class", bucket)}
	}
	if err := u.validator.Validate(asset, bucket); err != nil {
		return nil, err
	}

	thumb, info, err := u.prepareThumbnail(ctx, bucket, asset)
	if err != nil {
		return nil, err
	}

	videoResult, err := u.transport.Upload(ctx, bucket, asset, opts.Progress)
	if err != nil {
		return nil, err
	}

	result := &VideoUploadResult{Video: videoResult, Info: info}
	if thumb == nil {
		return result, nil
	}

	thumbResult, err := u.transport.Upload(ctx, domain.BucketCoverImage, thumb, nil)
	if err != nil {
		if bucket.ThumbnailRequired() {
			return nil, fmt.Errorf("uploading cover thumbnail: %v: %w", err, domain.ErrThumbnailRequired)
		}
		log.Printf("uploader.Uploader.UploadVideo: thumbnail upload failed, continuing without cover: %v", err)
		return result, nil
	}
	result.Thumbnail = thumbResult
	return result, nil
}

// prepareThumbnail probes the video and extracts a cover frame. For
// classes without a mandatory cover, failures log and return a nil
// thumbnail instead of failing the operation.
func (u *Uploader) prepareThumbnail(ctx context.Context, bucket domain.BucketClass, asset *domain.MediaAsset) (*domain.MediaAsset, *domain.VideoInfo, error) {
	info, err := u.video.Probe(ctx, asset)
	if err != nil {
		if bucket.ThumbnailRequired() {
			return nil, nil, fmt.Errorf("probing %q: %v: %w", asset.Filename, err, domain.ErrThumbnailRequired)
		}
		log.Printf("uploader.Uploader.UploadVideo: probe failed, continuing without cover: %v", err)
		return nil, nil, nil
	}

	thumb, err := u.video.Thumbnail(ctx, asset, info.Duration)
	if err != nil {
		if bucket.ThumbnailRequired() {
			return nil, nil, fmt.Errorf("extracting thumbnail from %q: %v: %w", asset.Filename, err, domain.ErrThumbnailRequired)
		}
		log.Printf("uploader.Uploader.UploadVideo: thumbnail extraction failed, continuing without cover: %v", err)
		return nil, info, nil
	}
	return thumb, info, nil
}
