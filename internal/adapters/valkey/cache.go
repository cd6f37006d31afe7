package valkey

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// clientCacheTTL bounds how long a GET result may be served from the
// client-side cache before revalidating against the server. Catalog snapshots
// already use short server TTLs, so this only shaves hot-path round trips.
const clientCacheTTL = 5 * time.Second

// Cache implements ports.CacheService on Valkey. All keys are namespaced so
// the matching service can share an instance with other marketplace services.
type Cache struct {
	client valkey.Client
	prefix string
}

// New connects to Valkey at addr. Keys are stored under "geomatch:".
func New(addr string) (*Cache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &Cache{client: client, prefix: "geomatch:"}, nil
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get retrieves a value by key, served from the client-side cache when the
// entry is still fresh.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := c.client.DoCache(ctx, c.client.B().Get().Key(c.key(key)).Cache(), clientCacheTTL)
	if cmd.Error() != nil {
		return nil, cmd.Error()
	}
	return cmd.AsBytes()
}

// Set stores a value with a TTL in seconds.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	cmd := c.client.Do(ctx,
		c.client.B().Set().Key(c.key(key)).Value(string(value)).Ex(time.Duration(ttlSeconds)*time.Second).Build(),
	)
	return cmd.Error()
}

// Delete removes a key. Server-assisted invalidation also evicts the entry
// from any client-side caches holding it.
func (c *Cache) Delete(ctx context.Context, key string) error {
	cmd := c.client.Do(ctx, c.client.B().Del().Key(c.key(key)).Build())
	return cmd.Error()
}

// Close releases the client.
func (c *Cache) Close() {
	c.client.Close()
}
