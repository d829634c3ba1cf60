package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mediaup/internal/config"
	"mediaup/internal/domain"
	"mediaup/internal/port"
	"mediaup/internal/validate"
)

// UploadHandler handles upload authorization and proxied upload endpoints.
type UploadHandler struct {
	storage       port.ObjectStorage
	validator     *validate.Validator
	bucket        string
	presignExpiry time.Duration
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(storage port.ObjectStorage, validator *validate.Validator, cfg *config.S3Config) *UploadHandler {
	return &UploadHandler{
		storage:       storage,
		validator:     validator,
		bucket:        cfg.Bucket,
		presignExpiry: time.Duration(cfg.PresignExpiry) * time.Second,
	}
}

// Authorize handles POST /api/v1/uploads/authorize. Every call mints a
// fresh object key and a fresh presigned grant; sessions are never reissued.
func (h *UploadHandler) Authorize(c *gin.Context) {
	var req port.AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed authorize request")
		return
	}

	asset := &domain.MediaAsset{
		MIME:     req.MIME,
		Size:     req.Size,
		Filename: req.Filename,
	}
	if err := h.validator.Validate(asset, req.Bucket); err != nil {
		HandleError(c, err)
		return
	}

	key := objectKey(req.Bucket, req.Filename)
	expiresAt := time.Now().Add(h.presignExpiry)
	uploadURL, err := h.storage.PresignPutObject(c.Request.Context(), h.bucket, key, req.MIME, h.presignExpiry)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, domain.UploadSession{
		UploadURL: uploadURL,
		PublicURL: h.storage.PublicURL(h.bucket, key),
		ObjectKey: key,
		ExpiresAt: expiresAt,
	})
}

// Proxy handles POST /api/v1/uploads/proxy: a multipart upload written to
// storage server-side for clients that cannot reach storage directly.
func (h *UploadHandler) Proxy(c *gin.Context) {
	bucket := domain.BucketClass(c.PostForm("bucket"))

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "reading file failed")
		return
	}

	contentType := header.Header.Get("Content-Type")
	asset := domain.NewMediaAsset(data, contentType, header.Filename)
	if err := h.validator.Validate(asset, bucket); err != nil {
		HandleError(c, err)
		return
	}

	key := objectKey(bucket, header.Filename)
	if _, err := h.storage.Upload(c.Request.Context(), port.UploadInput{
		Bucket:      h.bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        asset.Size,
	}); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"public_url": h.storage.PublicURL(h.bucket, key),
		"object_key": key,
	})
}

// objectKey builds a collision-free key: class prefix, a fresh UUID, then
// the client filename reduced to its base name.
func objectKey(bucket domain.BucketClass, filename string) string {
	name := path.Base(filename)
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("uploads/%s/%s/%s", bucket, uuid.New().String(), name)
}
