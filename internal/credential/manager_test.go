package credential_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mediaup/internal/credential"
	"mediaup/internal/domain"
	"mediaup/internal/port"
	"mediaup/mocks"
)

func session(token string, ttl time.Duration) *port.Session {
	return &port.Session{Token: token, ExpiresAt: time.Now().Add(ttl)}
}

func TestManager_EnsureValid_CurrentSessionStillGood(t *testing.T) {
	store := new(mocks.MockSessionStore)
	mgr := credential.NewManager(store)

	store.On("Current", mock.Anything).Return(session("tok-live", 10*time.Minute), nil)

	token, err := mgr.EnsureValid(context.Background(), time.Minute)

	assert.NoError(t, err)
	assert.Equal(t, "tok-live", token)
	store.AssertNotCalled(t, "Refresh", mock.Anything)
}

func TestManager_EnsureValid_RefreshesExpiringSession(t *testing.T) {
	store := new(mocks.MockSessionStore)
	mgr := credential.NewManager(store)

	store.On("Current", mock.Anything).Return(session("tok-stale", 10*time.Second), nil)
	store.On("Refresh", mock.Anything).Return(session("tok-fresh", 15*time.Minute), nil)

	token, err := mgr.EnsureValid(context.Background(), time.Minute)

	assert.NoError(t, err)
	assert.Equal(t, "tok-fresh", token)
	store.AssertExpectations(t)
}

func TestManager_EnsureValid_RefreshFailure_Unauthenticated(t *testing.T) {
	store := new(mocks.MockSessionStore)
	mgr := credential.NewManager(store)

	store.On("Current", mock.Anything).Return(nil, assert.AnError)
	store.On("Refresh", mock.Anything).Return(nil, assert.AnError)

	_, err := mgr.EnsureValid(context.Background(), time.Minute)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestManager_EnsureValid_RefreshedSessionStillShort_Unauthenticated(t *testing.T) {
	store := new(mocks.MockSessionStore)
	mgr := credential.NewManager(store)

	store.On("Current", mock.Anything).Return(nil, assert.AnError)
	store.On("Refresh", mock.Anything).Return(session("tok-short", 5*time.Second), nil)

	_, err := mgr.EnsureValid(context.Background(), time.Minute)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestManager_EnsureValid_JWTExpClaim_WhenStoreTracksNoExpiry(t *testing.T) {
	store := new(mocks.MockSessionStore)
	mgr := credential.NewManager(store)

	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour))}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	store.On("Current", mock.Anything).Return(&port.Session{Token: signed}, nil)

	token, err := mgr.EnsureValid(context.Background(), time.Minute)

	assert.NoError(t, err)
	assert.Equal(t, signed, token)
	store.AssertNotCalled(t, "Refresh", mock.Anything)
}

func TestManager_EnsureValid_ConcurrentRefreshesCollapse(t *testing.T) {
	store := new(mocks.MockSessionStore)
	mgr := credential.NewManager(store)

	store.On("Current", mock.Anything).Return(session("tok-stale", time.Second), nil)
	store.On("Refresh", mock.Anything).
		Run(func(args mock.Arguments) { time.Sleep(100 * time.Millisecond) }).
		Return(session("tok-fresh", 15*time.Minute), nil)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			token, err := mgr.EnsureValid(context.Background(), time.Minute)
			assert.NoError(t, err)
			assert.Equal(t, "tok-fresh", token)
		}()
	}
	close(start)
	wg.Wait()

	store.AssertNumberOfCalls(t, "Refresh", 1)
}
