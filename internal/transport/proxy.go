package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"mediaup/internal/domain"
	"mediaup/internal/port"
	"mediaup/internal/validate"
)

// ProxyRoute is the fallback upload path: the raw bytes go to the server as
// a multipart form and the server performs storage placement. Used when the
// presigned infrastructure is unreachable. It implements port.UploadRoute.
type ProxyRoute struct {
	baseURL    string
	httpClient *http.Client
	validator  *validate.Validator
}

// NewProxyRoute creates the fallback route.
func NewProxyRoute(baseURL string, validator *validate.Validator) *ProxyRoute {
	return &ProxyRoute{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		validator:  validator,
	}
}

// proxyResponse mirrors the collaborator's response envelope.
type proxyResponse struct {
	Success bool `json:"success"`
	Data    struct {
		PublicURL string `json:"public_url"`
		ObjectKey string `json:"object_key"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (r *ProxyRoute) Upload(ctx context.Context, token string, bucket domain.BucketClass, asset *domain.MediaAsset, progress port.ProgressFunc) (*domain.UploadResult, error) {
	// The fallback runs its own validator pass; it may be entered without
	// going through the primary pipeline.
	if err := r.validator.Validate(asset, bucket); err != nil {
		return nil, err
	}

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	if err := writer.WriteField("bucket", string(bucket)); err != nil {
		return nil, fmt.Errorf("writing proxy form field: %w", err)
	}
	part, err := writer.CreateFormFile("file", asset.Filename)
	if err != nil {
		return nil, fmt.Errorf("creating proxy form file: %w", err)
	}
	if _, err := part.Write(asset.Data); err != nil {
		return nil, fmt.Errorf("writing proxy form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing proxy form: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, TransferTimeout(asset.Size))
	defer cancel()

	total := int64(form.Len())
	body := newProgressReader(bytes.NewReader(form.Bytes()), total, progress)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/v1/uploads/proxy", body)
	if err != nil {
		return nil, fmt.Errorf("building proxy request: %w", err)
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proxy upload: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("proxy rejected with status %d: %w", resp.StatusCode, domain.ErrUnauthenticated)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope proxyResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error != nil {
			return nil, fmt.Errorf("proxy rejected (status %d): %s - %s",
				resp.StatusCode, envelope.Error.Code, envelope.Error.Message)
		}
		return nil, fmt.Errorf("proxy rejected with status %d", resp.StatusCode)
	}

	var envelope proxyResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding proxy response: %w", err)
	}
	if envelope.Data.PublicURL == "" {
		return nil, fmt.Errorf("proxy response missing public URL")
	}

	log.Printf("transport.ProxyRoute: uploaded %s via proxy", envelope.Data.ObjectKey)
	return &domain.UploadResult{
		PublicURL: envelope.Data.PublicURL,
		ObjectKey: envelope.Data.ObjectKey,
		Attempts:  1,
	}, nil
}
