package authorize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"mediaup/internal/domain"
	"mediaup/internal/port"
)

// DefaultTimeout bounds a single authorization request.
const DefaultTimeout = 15 * time.Second

// Client obtains upload sessions from the authorization collaborator.
// It implements port.Authorizer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the collaborator at baseURL. A zero
// timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// authorizeResponse mirrors the collaborator's response envelope.
type authorizeResponse struct {
	Success bool                 `json:"success"`
	Data    domain.UploadSession `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Authorize(ctx context.Context, token string, req port.AuthorizeRequest) (*domain.UploadSession, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling authorize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/uploads/authorize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building authorize request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("authorize rejected with status %d: %w", resp.StatusCode, domain.ErrUnauthenticated)
	}
	if resp.StatusCode >= 500 {
		return nil, &domain.TransientError{
			Stage: domain.StageAuthorize,
			Err:   fmt.Errorf("authorize returned status %d", resp.StatusCode),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope authorizeResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error != nil {
			return nil, fmt.Errorf("authorize rejected (status %d): %s - %s",
				resp.StatusCode, envelope.Error.Code, envelope.Error.Message)
		}
		return nil, fmt.Errorf("authorize rejected with status %d", resp.StatusCode)
	}

	var envelope authorizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding authorize response: %w", err)
	}
	if envelope.Data.UploadURL == "" {
		return nil, fmt.Errorf("authorize response missing upload URL")
	}

	log.Printf("authorize.Client: issued session for key %s", envelope.Data.ObjectKey)
	return &envelope.Data, nil
}

// classifyNetworkError separates "the path is down" from "this attempt
// failed". Connection refused and unknown-host mean the presigned
// infrastructure is unreachable as a whole; anything else (timeouts,
// resets) is an attempt-level transient.
func classifyNetworkError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &domain.PathUnavailableError{Err: err}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return &domain.PathUnavailableError{Err: err}
	}
	return &domain.TransientError{Stage: domain.StageAuthorize, Err: err}
}
