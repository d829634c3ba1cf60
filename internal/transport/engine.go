package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"mediaup/internal/domain"
	"mediaup/internal/port"
)

const (
	// transferFloor is the minimum transfer timeout; large payloads get
	// more. A fixed short timeout is a correctness bug for big video.
	transferFloor = 60 * time.Second
	transferCap   = 300 * time.Second
	perMiB        = 3 * time.Second
)

// TransferTimeout scales the PUT deadline with the payload size.
func TransferTimeout(size int64) time.Duration {
	timeout := transferFloor + time.Duration(size/(1024*1024))*perMiB
	if timeout > transferCap {
		return transferCap
	}
	return timeout
}

// Engine performs the bytes-on-the-wire transfer: a single PUT of the full
// payload to the session's write URL, emitting progress as it goes.
type Engine struct {
	httpClient *http.Client
}

// NewEngine creates an Engine. The per-request deadline comes from
// TransferTimeout, so the underlying client carries none.
func NewEngine() *Engine {
	return &Engine{httpClient: &http.Client{}}
}

// Put uploads the asset through the session. On success the object lives at
// the session's already-known public URL; no second round trip is needed.
func (e *Engine) Put(ctx context.Context, sess *domain.UploadSession, asset *domain.MediaAsset, progress port.ProgressFunc) error {
	ctx, cancel := context.WithTimeout(ctx, TransferTimeout(asset.Size))
	defer cancel()

	body := newProgressReader(bytes.NewReader(asset.Data), asset.Size, progress)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, sess.UploadURL, body)
	if err != nil {
		return fmt.Errorf("building transfer request: %w", err)
	}
	req.ContentLength = asset.Size
	req.Header.Set("Content-Type", asset.MIME)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return &domain.TransientError{Stage: domain.StageTransfer, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	log.Printf("transport.Engine: storage rejected PUT for %s: status %d", sess.ObjectKey, resp.StatusCode)

	switch {
	case isSignatureMismatch(string(detail)):
		// Session likely went stale inside its validity window; a fresh
		// one is requested on retry.
		return &domain.TransientError{
			Stage: domain.StageTransfer,
			Err:   fmt.Errorf("storage rejected signature (status %d)", resp.StatusCode),
		}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.ForbiddenError{
			Err: fmt.Errorf("storage denied write (status %d)", resp.StatusCode),
		}
	case resp.StatusCode >= 500:
		return &domain.TransientError{
			Stage: domain.StageTransfer,
			Err:   fmt.Errorf("storage returned status %d", resp.StatusCode),
		}
	default:
		return fmt.Errorf("storage rejected transfer with status %d", resp.StatusCode)
	}
}

// isSignatureMismatch recognizes the storage error class caused by
// time-window drift on a presigned URL.
func isSignatureMismatch(body string) bool {
	for _, marker := range []string{
		"SignatureDoesNotMatch",
		"Request has expired",
		"ExpiredToken",
		"AuthorizationQueryParametersError",
	} {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

// progressReader counts bytes handed to the HTTP transport and reports
// snapshots to the caller.
type progressReader struct {
	r     io.Reader
	sent  int64
	total int64
	fn    port.ProgressFunc
}

func newProgressReader(r io.Reader, total int64, fn port.ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(domain.ProgressEvent{Sent: p.sent, Total: p.total})
		}
	}
	return n, err
}
