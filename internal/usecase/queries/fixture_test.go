//go:build unit

package queries_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"station-booking/internal/domain/resource"
	"station-booking/internal/infra/memstore"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/usecase/shared"
	"station-booking/tests/common/builder"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *memstore.Store
	clock *clock.MockClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		t:     t,
		ctx:   context.Background(),
		store: memstore.New(),
		clock: clock.NewMockClock(base),
	}
}

func (f *fixture) resource(b *builder.ResourceBuilder) *resource.Resource {
	f.t.Helper()
	res := b.MustBuildDomain()
	err := f.store.Within(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, res)
	})
	require.NoError(f.t, err)
	return res
}

func (f *fixture) booking(b *builder.BookingBuilder) {
	f.t.Helper()
	bk := b.MustBuildDomain()
	err := f.store.Within(f.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, bk)
	})
	require.NoError(f.t, err)
}

// jsonCache round-trips through JSON like the Redis cache does.
type jsonCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

func newJSONCache() *jsonCache {
	return &jsonCache{entries: make(map[string][]byte)}
}

func (c *jsonCache) Get(_ context.Context, key string, dest any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok || json.Unmarshal(raw, dest) != nil {
		return false
	}
	c.hits++
	return true
}

func (c *jsonCache) Set(_ context.Context, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if raw, err := json.Marshal(value); err == nil {
		c.entries[key] = raw
	}
}

func (c *jsonCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
}
