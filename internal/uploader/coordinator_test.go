package uploader_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mediaup/internal/domain"
	"mediaup/internal/uploader"
	"mediaup/mocks"
)

func newTestCoordinator(creds *mocks.MockCredentialSource, route *mocks.MockUploadRoute, delays *[]time.Duration) *uploader.Coordinator {
	c := uploader.NewCoordinator(creds, route, 0, 0, 0, 0)
	c.Sleep = func(ctx context.Context, d time.Duration) error {
		if delays != nil {
			*delays = append(*delays, d)
		}
		return nil
	}
	return c
}

func testAsset() *domain.MediaAsset {
	return domain.NewMediaAsset([]byte("payload"), "image/jpeg", "photo.jpg")
}

func TestCoordinator_Run_SucceedsFirstAttempt(t *testing.T) {
	creds := new(mocks.MockCredentialSource)
	route := new(mocks.MockUploadRoute)
	creds.On("EnsureValid", mock.Anything, mock.Anything).Return("tok-1", nil)
	route.On("Upload", mock.Anything, "tok-1", domain.BucketPostImage, mock.Anything, mock.Anything).
		Return(&domain.UploadResult{PublicURL: "https://cdn.example.com/a"}, nil)

	c := newTestCoordinator(creds, route, nil)
	result, err := c.Run(context.Background(), domain.BucketPostImage, testAsset(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Attempts)
	route.AssertNumberOfCalls(t, "Upload", 1)
}

func TestCoordinator_Run_RetriesTransientThenSucceeds(t *testing.T) {
	creds := new(mocks.MockCredentialSource)
	route := new(mocks.MockUploadRoute)
	creds.On("EnsureValid", mock.Anything, mock.Anything).Return("tok-1", nil)

	transient := &domain.TransientError{Stage: domain.StageTransfer, Err: errors.New("gateway timeout")}
	route.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, transient).Times(3)
	route.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.UploadResult{PublicURL: "https://cdn.example.com/a"}, nil).Once()

	var delays []time.Duration
	c := newTestCoordinator(creds, route, &delays)
	result, err := c.Run(context.Background(), domain.BucketPostImage, testAsset(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 4, result.Attempts)
	// Credentials are re-validated before every attempt.
	creds.AssertNumberOfCalls(t, "EnsureValid", 4)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, delays)
}

func TestCoordinator_Run_ExhaustsBudget(t *testing.T) {
	creds := new(mocks.MockCredentialSource)
	route := new(mocks.MockUploadRoute)
	creds.On("EnsureValid", mock.Anything, mock.Anything).Return("tok-1", nil)

	cause := errors.New("connection reset")
	route.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &domain.TransientError{Stage: domain.StageTransfer, Err: cause})

	c := newTestCoordinator(creds, route, nil)
	_, err := c.Run(context.Background(), domain.BucketPostImage, testAsset(), nil)

	var exhausted *domain.ExhaustedError
	assert.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 4, exhausted.Attempts)
	assert.ErrorIs(t, err, cause)
	route.AssertNumberOfCalls(t, "Upload", 4)
}

func TestCoordinator_Run_UnauthenticatedNeverRetried(t *testing.T) {
	creds := new(mocks.MockCredentialSource)
	route := new(mocks.MockUploadRoute)
	creds.On("EnsureValid", mock.Anything, mock.Anything).Return("", domain.ErrUnauthenticated)

	c := newTestCoordinator(creds, route, nil)
	_, err := c.Run(context.Background(), domain.BucketPostImage, testAsset(), nil)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	creds.AssertNumberOfCalls(t, "EnsureValid", 1)
	route.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCoordinator_Run_TerminalErrorShortCircuits(t *testing.T) {
	creds := new(mocks.MockCredentialSource)
	route := new(mocks.MockUploadRoute)
	creds.On("EnsureValid", mock.Anything, mock.Anything).Return("tok-1", nil)
	route.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &domain.ValidationError{Reason: "rejected by server"})

	c := newTestCoordinator(creds, route, nil)
	_, err := c.Run(context.Background(), domain.BucketPostImage, testAsset(), nil)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	route.AssertNumberOfCalls(t, "Upload", 1)
}

func TestCoordinator_Run_ForbiddenRetriedOnce(t *testing.T) {
	creds := new(mocks.MockCredentialSource)
	route := new(mocks.MockUploadRoute)
	creds.On("EnsureValid", mock.Anything, mock.Anything).Return("tok-1", nil)

	forbidden := &domain.ForbiddenError{Err: errors.New("403 from storage")}
	route.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, forbidden)

	c := newTestCoordinator(creds, route, nil)
	_, err := c.Run(context.Background(), domain.BucketPostImage, testAsset(), nil)

	var fe *domain.ForbiddenError
	assert.ErrorAs(t, err, &fe)
	route.AssertNumberOfCalls(t, "Upload", 2)
}

func TestCoordinator_Run_PathUnavailableReturnedImmediately(t *testing.T) {
	creds := new(mocks.MockCredentialSource)
	route := new(mocks.MockUploadRoute)
	creds.On("EnsureValid", mock.Anything, mock.Anything).Return("tok-1", nil)
	route.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &domain.PathUnavailableError{Err: errors.New("connection refused")})

	c := newTestCoordinator(creds, route, nil)
	_, err := c.Run(context.Background(), domain.BucketPostImage, testAsset(), nil)

	var unavailable *domain.PathUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	route.AssertNumberOfCalls(t, "Upload", 1)
}

func TestCoordinator_Backoff_Capped(t *testing.T) {
	c := uploader.NewCoordinator(nil, nil, 10, 0, 0, 0)

	assert.Equal(t, time.Second, c.Backoff(1))
	assert.Equal(t, 2*time.Second, c.Backoff(2))
	assert.Equal(t, 4*time.Second, c.Backoff(3))
	assert.Equal(t, 5*time.Second, c.Backoff(4))
	assert.Equal(t, 5*time.Second, c.Backoff(9))
}
