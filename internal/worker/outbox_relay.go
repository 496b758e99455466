// Package worker runs background jobs next to the HTTP server.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/infra/events"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// OutboxRelay moves committed booking events from the outbox to the broker.
// Delivery is at least once: an event is marked published only after the
// broker accepted it, and a failed pass leaves the rest for the next tick.
type OutboxRelay struct {
	uow       shared.UnitOfWork
	publisher events.Publisher
	clock     clock.Clock
	interval  time.Duration
	batchSize int
	logger    *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher events.Publisher, clk clock.Clock, interval time.Duration, batchSize int, logger *slog.Logger) *OutboxRelay {
	return &OutboxRelay{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Start runs the relay loop until Stop is called.
func (r *OutboxRelay) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
					r.logger.Warn("outbox relay pass failed", "error", err.Error())
				}
			}
		}
	}()
}

// Stop waits for the running pass to finish.
func (r *OutboxRelay) Stop(ctx context.Context) error {
	r.once.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
	})
	if r.done == nil {
		return nil
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RelayOnce publishes one batch and returns how many events were delivered.
// Fetching and marking run in separate transactions so a slow broker never
// holds the store. Events delivered before a publish failure are still marked;
// a crash between publish and mark redelivers them on the next pass.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	var pending []booking.Event
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		pending, err = tx.Events().FetchPending(ctx, r.batchSize)
		return err
	})
	if err != nil || len(pending) == 0 {
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(pending))
	var publishErr error
	for _, e := range pending {
		if publishErr = r.publisher.Publish(ctx, e); publishErr != nil {
			break
		}
		ids = append(ids, e.ID)
	}
	if len(ids) == 0 {
		return 0, publishErr
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Events().MarkPublished(ctx, ids, r.clock.Now())
	})
	if err != nil {
		return 0, err
	}
	return len(ids), publishErr
}
