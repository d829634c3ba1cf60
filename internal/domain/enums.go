package domain

// MediaFamily is the general kind of media an upload carries.
type MediaFamily string

const (
	FamilyImage MediaFamily = "image"
	FamilyVideo MediaFamily = "video"
)

// BucketClass is the semantic category of an upload. It fixes the size
// ceiling, the allowed MIME family and the preprocessing bounds for the
// whole lifetime of an upload operation.
type BucketClass string

const (
	BucketAvatar       BucketClass = "avatar"
	BucketPostImage    BucketClass = "post-image"
	BucketProductImage BucketClass = "product-image"
	BucketCoverImage   BucketClass = "cover-image"
	BucketStoryMedia   BucketClass = "story-media"
	BucketReelVideo    BucketClass = "reel-video"
)

const (
	maxImageBytes = 5 * 1024 * 1024
	maxCoverBytes = 10 * 1024 * 1024
	maxStoryBytes = 100 * 1024 * 1024
	maxReelBytes  = 200 * 1024 * 1024
)

// AllBucketClasses lists every valid bucket class.
var AllBucketClasses = []BucketClass{
	BucketAvatar,
	BucketPostImage,
	BucketProductImage,
	BucketCoverImage,
	BucketStoryMedia,
	BucketReelVideo,
}

// Valid reports whether b names a known bucket class.
func (b BucketClass) Valid() bool {
	for _, c := range AllBucketClasses {
		if b == c {
			return true
		}
	}
	return false
}

// Family returns the media family the class accepts.
func (b BucketClass) Family() MediaFamily {
	switch b {
	case BucketStoryMedia, BucketReelVideo:
		return FamilyVideo
	default:
		return FamilyImage
	}
}

// MaxBytes returns the byte ceiling for the class.
func (b BucketClass) MaxBytes() int64 {
	switch b {
	case BucketCoverImage:
		return maxCoverBytes
	case BucketStoryMedia:
		return maxStoryBytes
	case BucketReelVideo:
		return maxReelBytes
	default:
		return maxImageBytes
	}
}

// Bounds returns the fit-within resize bounding box for image preprocessing.
func (b BucketClass) Bounds() (width, height int) {
	if b == BucketAvatar {
		return 512, 512
	}
	return 1920, 1080
}

// ThumbnailRequired reports whether a video upload in this class must carry
// a cover thumbnail. Short-form feed video cannot render without one.
func (b BucketClass) ThumbnailRequired() bool {
	return b == BucketReelVideo
}

// AllowedImageTypes maps image MIME types accepted for image classes.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// AllowedVideoTypes maps video MIME types accepted for video classes.
var AllowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
	"video/webm":      true,
}

// ExtensionTypes maps file extensions (without dot) to an advisory MIME
// type, used only when the declared MIME is missing or unrecognized.
var ExtensionTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
	"webm": "video/webm",
}
