//go:build unit

package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/infra/events"
	"station-booking/internal/infra/memstore"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/usecase/shared"
	"station-booking/internal/worker"
	"station-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvents(t *testing.T, store *memstore.Store, n int) []booking.Event {
	t.Helper()
	res := builder.NewResourceBuilder().MustBuildDomain()
	now := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	var appended []booking.Event
	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Resources().Create(ctx, res); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			start := now.Add(time.Duration(i+1) * time.Hour)
			b := builder.NewBookingBuilder().WithResource(res.ID()).WithInterval(start, start.Add(time.Hour)).MustBuildDomain()
			if err := tx.Bookings().Create(ctx, b); err != nil {
				return err
			}
			e := booking.NewEvent(booking.EventCreated, b, now)
			if err := tx.Events().Append(ctx, e); err != nil {
				return err
			}
			appended = append(appended, e)
		}
		return nil
	})
	require.NoError(t, err)
	return appended
}

func pendingCount(t *testing.T, store *memstore.Store) int {
	t.Helper()
	var n int
	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		pending, err := tx.Events().FetchPending(ctx, 1000)
		n = len(pending)
		return err
	})
	require.NoError(t, err)
	return n
}

func newRelay(store *memstore.Store, pub events.Publisher, batch int) *worker.OutboxRelay {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(time.Date(2030, 1, 1, 9, 30, 0, 0, time.UTC))
	return worker.NewOutboxRelay(store, pub, clk, 10*time.Millisecond, batch, logger)
}

func TestOutboxRelay_RelayOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes in append order and marks delivered events", func(t *testing.T) {
		store := memstore.New()
		appended := seedEvents(t, store, 3)
		rec := events.NewRecorder()
		relay := newRelay(store, rec, 10)

		n, err := relay.RelayOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, appended, rec.Events())
		assert.Zero(t, pendingCount(t, store))

		n, err = relay.RelayOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Len(t, rec.Events(), 3)
	})

	t.Run("respects the batch size", func(t *testing.T) {
		store := memstore.New()
		seedEvents(t, store, 5)
		relay := newRelay(store, events.NewRecorder(), 2)

		n, err := relay.RelayOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 3, pendingCount(t, store))
	})

	t.Run("failed publish leaves events for the next pass", func(t *testing.T) {
		store := memstore.New()
		seedEvents(t, store, 2)
		rec := events.NewRecorder()
		rec.FailWith(errors.New("broker down"))
		relay := newRelay(store, rec, 10)

		n, err := relay.RelayOnce(ctx)
		require.Error(t, err)
		assert.Zero(t, n)
		assert.Equal(t, 2, pendingCount(t, store))

		rec.FailWith(nil)
		n, err = relay.RelayOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestOutboxRelay_StartStop(t *testing.T) {
	store := memstore.New()
	seedEvents(t, store, 2)
	rec := events.NewRecorder()
	relay := newRelay(store, rec, 10)

	relay.Start()
	assert.Eventually(t, func() bool { return len(rec.Events()) == 2 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, relay.Stop(ctx))
	require.NoError(t, relay.Stop(ctx))
}

// gatedPublisher blocks every Publish until release is closed.
type gatedPublisher struct {
	entered chan struct{}
	release chan struct{}
}

func (p *gatedPublisher) Publish(ctx context.Context, _ booking.Event) error {
	select {
	case p.entered <- struct{}{}:
	default:
	}
	select {
	case <-p.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *gatedPublisher) Close() error { return nil }

func TestOutboxRelay_SlowBrokerDoesNotHoldStore(t *testing.T) {
	store := memstore.New()
	seedEvents(t, store, 1)
	pub := &gatedPublisher{entered: make(chan struct{}, 1), release: make(chan struct{})}
	relay := newRelay(store, pub, 10)

	relayed := make(chan int, 1)
	go func() {
		n, _ := relay.RelayOnce(context.Background())
		relayed <- n
	}()

	select {
	case <-pub.entered:
	case <-time.After(time.Second):
		t.Fatal("publish was never attempted")
	}

	// the store must stay writable while the broker is stuck
	written := make(chan error, 1)
	go func() {
		written <- store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Resources().Create(ctx, builder.NewResourceBuilder().WithName("Station Z").MustBuildDomain())
		})
	}()
	select {
	case err := <-written:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("store write blocked behind publish")
	}

	close(pub.release)
	assert.Equal(t, 1, <-relayed)
	assert.Zero(t, pendingCount(t, store))
}
