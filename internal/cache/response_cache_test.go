package cache

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/staynest/rental-service/internal/config"
	"github.com/staynest/rental-service/internal/events"
)

type fakeBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: make(map[string][]byte)}
}

func (f *fakeBackend) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, errMiss
	}
	return v, nil
}

func (f *fakeBackend) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeBackend) Incr(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _ := strconv.Atoi(string(f.data[key]))
	f.data[key] = []byte(strconv.Itoa(n + 1))
	return nil
}

func newCachedApp(rc *ResponseCache, status *int) (*fiber.App, *int) {
	hits := 0
	app := fiber.New()
	app.Get("/properties", rc.Middleware(events.ResourceProperty), func(c *fiber.Ctx) error {
		hits++
		return c.Status(*status).JSON(fiber.Map{"call": hits})
	})
	return app, &hits
}

func get(t *testing.T, app *fiber.App, url string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestResponseCacheHitAndInvalidate(t *testing.T) {
	t.Parallel()

	rc := newResponseCache(newFakeBackend(), "test", time.Minute, zap.NewNop())
	status := http.StatusOK
	app, hits := newCachedApp(rc, &status)

	resp, body := get(t, app, "/properties?location=tahoe")
	assert.Equal(t, "MISS", resp.Header.Get(HeaderCacheStatus))
	assert.JSONEq(t, `{"call":1}`, body)

	resp, body = get(t, app, "/properties?location=tahoe")
	assert.Equal(t, "HIT", resp.Header.Get(HeaderCacheStatus))
	assert.JSONEq(t, `{"call":1}`, body)
	assert.Equal(t, 1, *hits)

	_, body = get(t, app, "/properties?location=malibu")
	assert.JSONEq(t, `{"call":2}`, body)

	// an amenity change makes property listings stale
	require.NoError(t, rc.handle(context.Background(), events.NewEvent(events.ResourceAmenity, events.ActionDeleted, "a-1", "", nil)))

	resp, body = get(t, app, "/properties?location=tahoe")
	assert.Equal(t, "MISS", resp.Header.Get(HeaderCacheStatus))
	assert.JSONEq(t, `{"call":3}`, body)
}

func TestResponseCacheSkipsErrors(t *testing.T) {
	t.Parallel()

	rc := newResponseCache(newFakeBackend(), "test", time.Minute, zap.NewNop())
	status := http.StatusInternalServerError
	app, hits := newCachedApp(rc, &status)

	get(t, app, "/properties")
	get(t, app, "/properties")
	assert.Equal(t, 2, *hits)
}

func TestResponseCacheUnrelatedEventKeepsEntries(t *testing.T) {
	t.Parallel()

	rc := newResponseCache(newFakeBackend(), "test", time.Minute, zap.NewNop())
	status := http.StatusOK
	app, hits := newCachedApp(rc, &status)

	get(t, app, "/properties")
	require.NoError(t, rc.handle(context.Background(), events.NewEvent(events.ResourceBooking, events.ActionCreated, "b-1", "", nil)))
	resp, _ := get(t, app, "/properties")
	assert.Equal(t, "HIT", resp.Header.Get(HeaderCacheStatus))
	assert.Equal(t, 1, *hits)
}

func TestDisabledCachePassesThrough(t *testing.T) {
	t.Parallel()

	rc := New(nil, config.CacheConfig{Enabled: true}, zap.NewNop())
	assert.False(t, rc.Enabled())
	assert.NoError(t, rc.Invalidate(context.Background(), events.ResourceUser))

	status := http.StatusOK
	app, hits := newCachedApp(rc, &status)
	resp, _ := get(t, app, "/properties")
	get(t, app, "/properties")
	assert.Empty(t, resp.Header.Get(HeaderCacheStatus))
	assert.Equal(t, 2, *hits)
}
