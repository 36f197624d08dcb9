// +build integration

package blogs

import (
	"context"
	"flag"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
)

var memcachedIPs = flag.String("memcached-ips", "127.0.0.1:11211", "space-separated host:port values for memcached to connect to")

// This tests against a real memcached. A second identical request
// must be served from the cache, not the underlying reader.
func TestCachedRecent(t *testing.T) {
	counting := &countingReader{}
	cached := NewCached(counting, CacheConfig{
		Addresses: strings.Fields(*memcachedIPs),
		Timeout:   time.Second,
		Expiry:    time.Minute,
		Logger:    log.With(log.NewLogfmtLogger(os.Stderr), "component", "memcached"),
	})

	ctx := context.Background()

	// The cache key is derived from the page size, so pick one that
	// won't collide with entries left over from earlier runs.
	first := int(time.Now().UnixNano() % 1000000)

	posts, err := cached.Recent(ctx, first)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 1, counting.calls)

	again, err := cached.Recent(ctx, first)
	assert.NoError(t, err)
	assert.Equal(t, posts, again)
	assert.Equal(t, 1, counting.calls, "second read should come from the cache")
}
