// Package redis implements the fetched-document cache for the course
// report. Repeated runs against the same repository reuse the cached
// README and issue feed instead of re-fetching; the cache is strictly an
// optimization and every failure degrades to a miss.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wis-hub/course-report/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number.
	DB int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration

	// TTL is how long fetched documents stay cached.
	TTL time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		TTL:          10 * time.Minute,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ErrCacheConnection is returned when the Redis connection fails.
var ErrCacheConnection = errors.New("cache: connection failed")

// documentPrefix namespaces cached document bodies, keyed by source URL.
const documentPrefix = "course-report:doc:"

// ══════════════════════════════════════════════════════════════════════════════
// DOCUMENT CACHE
// ══════════════════════════════════════════════════════════════════════════════

// DocumentCache stores raw fetched text bodies keyed by their source URL.
type DocumentCache struct {
	client *redis.Client
	config Config
	log    *logger.Logger
}

// NewDocumentCache connects to Redis and verifies the connection.
func NewDocumentCache(cfg Config, log *logger.Logger) (*DocumentCache, error) {
	if log == nil {
		log = logger.Default()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return &DocumentCache{
		client: client,
		config: cfg,
		log:    log.With(logger.Component("doc-cache")),
	}, nil
}

// Get returns the cached body for a URL. A miss, an expired entry, and a
// Redis error all come back as not-ok; fetch layers fall through to the
// network.
func (c *DocumentCache) Get(ctx context.Context, url string) (string, bool) {
	body, err := c.client.Get(ctx, documentPrefix+url).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache read failed", logger.URL(url), logger.Err(err))
		}
		return "", false
	}
	c.log.Debug("cache hit", logger.URL(url))
	return body, true
}

// Set stores a fetched body under its URL with the configured TTL. Write
// failures are logged and ignored; the run already has the body in hand.
func (c *DocumentCache) Set(ctx context.Context, url, body string) {
	if err := c.client.Set(ctx, documentPrefix+url, body, c.config.TTL).Err(); err != nil {
		c.log.Warn("cache write failed", logger.URL(url), logger.Err(err))
	}
}

// Invalidate drops the cached body for a URL.
func (c *DocumentCache) Invalidate(ctx context.Context, url string) {
	if err := c.client.Del(ctx, documentPrefix+url).Err(); err != nil {
		c.log.Warn("cache invalidate failed", logger.URL(url), logger.Err(err))
	}
}

// Close closes the Redis connection.
func (c *DocumentCache) Close() error {
	return c.client.Close()
}
