// Package cache serves public collection and item reads from Redis.
//
// Keys embed a per-resource version counter; mutations bump the counter through
// domain events so stale entries are never read again and simply expire.
package cache

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/staynest/rental-service/internal/config"
	"github.com/staynest/rental-service/internal/events"
)

// HeaderCacheStatus reports HIT or MISS on cached routes.
const HeaderCacheStatus = "X-Cache"

// dependents lists which cached resources go stale when a resource changes.
// Cascading deletes reach further than the resource itself.
var dependents = map[string][]string{
	events.ResourceUser:     {events.ResourceUser, events.ResourceBooking, events.ResourceReview},
	events.ResourceHost:     {events.ResourceHost, events.ResourceProperty, events.ResourceBooking, events.ResourceReview},
	events.ResourceProperty: {events.ResourceProperty, events.ResourceBooking, events.ResourceReview},
	events.ResourceAmenity:  {events.ResourceAmenity, events.ResourceProperty},
	events.ResourceBooking:  {events.ResourceBooking},
	events.ResourceReview:   {events.ResourceReview},
}

type backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) error
}

var errMiss = errors.New("cache miss")

type redisBackend struct {
	client *redis.Client
}

func (b redisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errMiss
	}
	return v, err
}

func (b redisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.client.SetEx(ctx, key, value, ttl).Err()
}

func (b redisBackend) Incr(ctx context.Context, key string) error {
	return b.client.Incr(ctx, key).Err()
}

// ResponseCache caches successful GET responses per resource.
type ResponseCache struct {
	backend backend
	prefix  string
	ttl     time.Duration
	logger  *zap.Logger
}

// New returns a cache backed by client. A nil client or disabled config yields a
// pass-through cache.
func New(client *redis.Client, cfg config.CacheConfig, logger *zap.Logger) *ResponseCache {
	if client == nil || !cfg.Enabled {
		return &ResponseCache{logger: logger}
	}
	return newResponseCache(redisBackend{client: client}, cfg.Prefix, cfg.TTL(), logger)
}

func newResponseCache(b backend, prefix string, ttl time.Duration, logger *zap.Logger) *ResponseCache {
	return &ResponseCache{backend: b, prefix: prefix, ttl: ttl, logger: logger.Named("cache")}
}

// Enabled reports whether responses are actually cached.
func (rc *ResponseCache) Enabled() bool {
	return rc != nil && rc.backend != nil
}

// Middleware caches 200 responses of GET routes belonging to resource.
func (rc *ResponseCache) Middleware(resource string) fiber.Handler {
	if !rc.Enabled() {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		ctx := c.UserContext()
		key, err := rc.key(ctx, resource, c.OriginalURL())
		if err != nil {
			rc.logger.Debug("cache key unavailable", zap.String("resource", resource), zap.Error(err))
			return c.Next()
		}

		if body, err := rc.backend.Get(ctx, key); err == nil {
			c.Set(HeaderCacheStatus, "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(fiber.StatusOK).Send(body)
		}

		c.Set(HeaderCacheStatus, "MISS")
		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}
		body := append([]byte(nil), c.Response().Body()...)
		if err := rc.backend.Set(ctx, key, body, rc.ttl); err != nil {
			rc.logger.Warn("cache store failed", zap.String("resource", resource), zap.Error(err))
		}
		return nil
	}
}

// Invalidate bumps the version counter of each resource.
func (rc *ResponseCache) Invalidate(ctx context.Context, resources ...string) error {
	if !rc.Enabled() {
		return nil
	}
	var errs []error
	for _, resource := range resources {
		if err := rc.backend.Incr(ctx, rc.versionKey(resource)); err != nil {
			errs = append(errs, fmt.Errorf("invalidate %s: %w", resource, err))
		}
	}
	return errors.Join(errs...)
}

// Register subscribes invalidation to every domain event.
func (rc *ResponseCache) Register(d events.Dispatcher) {
	if !rc.Enabled() {
		return
	}
	events.SubscribeAll(d, events.AllEventTypes, rc.handle)
}

func (rc *ResponseCache) handle(ctx context.Context, event events.Event) error {
	stale, ok := dependents[event.Resource]
	if !ok {
		stale = []string{event.Resource}
	}
	return rc.Invalidate(ctx, stale...)
}

func (rc *ResponseCache) key(ctx context.Context, resource, url string) (string, error) {
	version := "0"
	raw, err := rc.backend.Get(ctx, rc.versionKey(resource))
	switch {
	case err == nil:
		version = string(raw)
	case !errors.Is(err, errMiss):
		return "", err
	}
	sum := sha1.Sum([]byte(url))
	return fmt.Sprintf("%s:%s:v%s:%x", rc.prefix, resource, version, sum[:]), nil
}

func (rc *ResponseCache) versionKey(resource string) string {
	return fmt.Sprintf("%s:ver:%s", rc.prefix, resource)
}
