/* Memcached-backed cache for blog listings.

Hashnode is an external service on the request path of /blogs, so
responses are cached for a short expiry. memcached will still evict
things when under memory pressure; we recover from that -- we'll just
get a cache miss, and fetch the listing again.
*/
package blogs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	"github.com/pkg/errors"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"github.com/pratyaywrites/profile-backend/pkg/api"
	backendmetrics "github.com/pratyaywrites/profile-backend/pkg/metrics"
)

const (
	// The minimum expiry given to a cache entry.
	MinExpiry = 10 * time.Second
)

var (
	cacheRequestDuration = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Namespace: "profile",
		Subsystem: "blog_cache",
		Name:      "request_duration_seconds",
		Help:      "Duration of blog cache requests, in seconds.",
		Buckets:   stdprometheus.DefBuckets,
	}, []string{backendmetrics.LabelMethod, backendmetrics.LabelSuccess})
)

// CacheConfig defines how a cached Reader should be constructed.
type CacheConfig struct {
	Addresses    []string
	Timeout      time.Duration
	MaxIdleConns int
	Expiry       time.Duration
	Logger       log.Logger
}

type cached struct {
	next   Reader
	client *memcache.Client
	expiry time.Duration
	logger log.Logger
}

// NewCached wraps a Reader with a memcached cache. Cache failures
// degrade to a live fetch rather than failing the request.
func NewCached(next Reader, config CacheConfig) Reader {
	client := memcache.New(config.Addresses...)
	client.Timeout = config.Timeout
	client.MaxIdleConns = config.MaxIdleConns

	expiry := config.Expiry
	if expiry < MinExpiry {
		expiry = MinExpiry
	}
	return &cached{
		next:   next,
		client: client,
		expiry: expiry,
		logger: config.Logger,
	}
}

func (c *cached) Recent(ctx context.Context, first int) ([]api.BlogPost, error) {
	key := cacheKey(first)

	if value, err := c.getKey(key); err == nil {
		var posts []api.BlogPost
		if err := json.Unmarshal(value, &posts); err == nil {
			return posts, nil
		}
		// A mangled entry is as good as a miss.
	} else if err != memcache.ErrCacheMiss {
		c.logger.Log("err", errors.Wrap(err, "fetching blog listing from memcache"))
	}

	posts, err := c.next.Recent(ctx, first)
	if err != nil {
		return nil, err
	}

	if value, err := json.Marshal(posts); err == nil {
		if err := c.setKey(key, value); err != nil {
			c.logger.Log("err", errors.Wrap(err, "storing blog listing in memcache"))
		}
	}
	return posts, nil
}

func (c *cached) getKey(key string) (value []byte, err error) {
	defer func(begin time.Time) {
		cacheRequestDuration.With(
			backendmetrics.LabelMethod, "GetKey",
			backendmetrics.LabelSuccess, fmt.Sprint(err == nil),
		).Observe(time.Since(begin).Seconds())
	}(time.Now())

	item, err := c.client.Get(key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

func (c *cached) setKey(key string, value []byte) (err error) {
	defer func(begin time.Time) {
		cacheRequestDuration.With(
			backendmetrics.LabelMethod, "SetKey",
			backendmetrics.LabelSuccess, fmt.Sprint(err == nil),
		).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return c.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(c.expiry.Seconds()),
	})
}

func cacheKey(first int) string {
	return fmt.Sprintf("profile:blogs:first=%d", first)
}
