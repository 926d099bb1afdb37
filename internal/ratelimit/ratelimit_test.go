package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTime struct{ now time.Time }

func (f *fakeTime) Now() time.Time          { return f.now }
func (f *fakeTime) Advance(d time.Duration) { f.now = f.now.Add(d) }

func take(t *testing.T, s Store, key string) Decision {
	t.Helper()
	d, err := s.Take(context.Background(), key)
	require.NoError(t, err)
	return d
}

func TestMemoryStore_FixedWindow(t *testing.T) {
	clock := &fakeTime{now: time.Unix(1_700_000_000, 0)}
	s := NewMemoryStoreWithClock(Policy{Max: 3, Window: 3 * time.Minute}, clock.Now)

	for i := 0; i < 3; i++ {
		assert.True(t, take(t, s, "ip").Allowed, "request %d", i)
	}
	d := take(t, s, "ip")
	assert.False(t, d.Allowed)
	assert.Equal(t, 3*time.Minute, d.RetryAfter)

	// other keys are independent
	assert.True(t, take(t, s, "other").Allowed)

	// nothing comes back before the window closes
	clock.Advance(2 * time.Minute)
	d = take(t, s, "ip")
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)

	clock.Advance(time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, take(t, s, "ip").Allowed, "next window request %d", i)
	}
	assert.False(t, take(t, s, "ip").Allowed)
}

func TestMemoryStore_PacedRequestsStayWithinWindow(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	clock := &fakeTime{now: start}
	s := NewMemoryStoreWithClock(Policy{Max: 5, Window: 15 * time.Minute, BlockFor: 15 * time.Minute}, clock.Now)

	allowed := 0
	for i := 0; i < 5; i++ {
		if take(t, s, "ip").Allowed {
			allowed++
		}
	}
	for _, at := range []time.Duration{
		3*time.Minute + time.Second,
		6*time.Minute + time.Second,
		9*time.Minute + time.Second,
		12*time.Minute + time.Second,
	} {
		clock.now = start.Add(at)
		if take(t, s, "ip").Allowed {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed)
}

func TestMemoryStore_BlockAfterLimit(t *testing.T) {
	clock := &fakeTime{now: time.Unix(1_700_000_000, 0)}
	s := NewMemoryStoreWithClock(Policy{Max: 5, Window: 15 * time.Minute, BlockFor: 15 * time.Minute}, clock.Now)

	for i := 0; i < 5; i++ {
		require.True(t, take(t, s, "ip").Allowed)
	}
	clock.Advance(5 * time.Minute)
	d := take(t, s, "ip")
	assert.False(t, d.Allowed)
	assert.Equal(t, 15*time.Minute, d.RetryAfter)

	// the window closing does not lift the block
	clock.Advance(10 * time.Minute)
	d = take(t, s, "ip")
	assert.False(t, d.Allowed)
	assert.Equal(t, 5*time.Minute, d.RetryAfter)

	clock.Advance(5 * time.Minute)
	assert.True(t, take(t, s, "ip").Allowed)
}

func TestMemoryStore_Prune(t *testing.T) {
	clock := &fakeTime{now: time.Unix(1_700_000_000, 0)}
	s := NewMemoryStoreWithClock(Policy{Max: 1, Window: time.Minute, BlockFor: time.Hour}, clock.Now)

	take(t, s, "idle")
	take(t, s, "blocked")
	take(t, s, "blocked")
	require.Equal(t, 2, s.Len())

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 1, s.Prune(10*time.Minute))
	assert.Equal(t, 1, s.Len())

	clock.Advance(time.Hour)
	assert.Equal(t, 1, s.Prune(10*time.Minute))
	assert.Zero(t, s.Len())
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(300*time.Millisecond))
	assert.Equal(t, 2, retryAfterSeconds(1500*time.Millisecond))
	assert.Equal(t, 900, retryAfterSeconds(15*time.Minute))
}

type failingStore struct{}

func (failingStore) Take(context.Context, string) (Decision, error) {
	return Decision{}, errors.New("redis down")
}

func newRouter(store Store, message string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(store, message))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestMiddleware(t *testing.T) {
	clock := &fakeTime{now: time.Unix(1_700_000_000, 0)}
	r := newRouter(NewMemoryStoreWithClock(Policy{Max: 1, Window: time.Minute, BlockFor: 15 * time.Minute}, clock.Now), MessageAuth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "900", w.Header().Get("Retry-After"))

	var body struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		RetryAfter int    `json:"retryAfter"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, MessageAuth, body.Message)
	assert.Equal(t, 900, body.RetryAfter)
}

func TestMiddleware_FailsOpen(t *testing.T) {
	r := newRouter(failingStore{}, MessageGlobal)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
