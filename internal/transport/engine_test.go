package transport_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mediaup/internal/domain"
	"mediaup/internal/transport"
)

func testSession(uploadURL string) *domain.UploadSession {
	return &domain.UploadSession{
		UploadURL: uploadURL,
		PublicURL: "https://cdn.example.com/obj",
		ObjectKey: "uploads/post-image/obj",
	}
}

func TestEngine_Put_SendsBodyAndContentType(t *testing.T) {
	payload := []byte("jpeg bytes here")
	var gotBody []byte
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	asset := domain.NewMediaAsset(payload, "image/jpeg", "photo.jpg")
	err := transport.NewEngine().Put(context.Background(), testSession(srv.URL), asset, nil)

	assert.NoError(t, err)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, "image/jpeg", gotContentType)
}

func TestEngine_Put_ProgressMonotonicToTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	asset := domain.NewMediaAsset(make([]byte, 256*1024), "image/jpeg", "photo.jpg")
	var events []domain.ProgressEvent
	err := transport.NewEngine().Put(context.Background(), testSession(srv.URL), asset, func(ev domain.ProgressEvent) {
		events = append(events, ev)
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, events)
	var prev int64
	for _, ev := range events {
		assert.GreaterOrEqual(t, ev.Sent, prev)
		assert.Equal(t, asset.Size, ev.Total)
		prev = ev.Sent
	}
	assert.Equal(t, asset.Size, events[len(events)-1].Sent)
}

func TestEngine_Put_SignatureMismatch_Transient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<Error><Code>SignatureDoesNotMatch</Code></Error>`))
	}))
	defer srv.Close()

	asset := domain.NewMediaAsset([]byte("x"), "image/jpeg", "photo.jpg")
	err := transport.NewEngine().Put(context.Background(), testSession(srv.URL), asset, nil)

	var te *domain.TransientError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, domain.StageTransfer, te.Stage)
}

func TestEngine_Put_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<Error><Code>AccessDenied</Code></Error>`))
	}))
	defer srv.Close()

	asset := domain.NewMediaAsset([]byte("x"), "image/jpeg", "photo.jpg")
	err := transport.NewEngine().Put(context.Background(), testSession(srv.URL), asset, nil)

	var fe *domain.ForbiddenError
	assert.ErrorAs(t, err, &fe)
}

func TestEngine_Put_ServerError_Transient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	asset := domain.NewMediaAsset([]byte("x"), "image/jpeg", "photo.jpg")
	err := transport.NewEngine().Put(context.Background(), testSession(srv.URL), asset, nil)

	var te *domain.TransientError
	assert.ErrorAs(t, err, &te)
}

func TestEngine_Put_NetworkError_Transient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	asset := domain.NewMediaAsset([]byte("x"), "image/jpeg", "photo.jpg")
	err := transport.NewEngine().Put(context.Background(), testSession(url), asset, nil)

	var te *domain.TransientError
	assert.ErrorAs(t, err, &te)
}

func TestTransferTimeout_Scaling(t *testing.T) {
	assert.Equal(t, 60*time.Second, transport.TransferTimeout(100*1024))
	assert.Equal(t, 90*time.Second, transport.TransferTimeout(10*1024*1024))
	assert.Equal(t, 300*time.Second, transport.TransferTimeout(200*1024*1024))
}
