// Package events delivers booking ledger events to a message broker.
package events

import (
	"context"
	"log/slog"

	"station-booking/internal/domain/booking"
)

// Publisher delivers one event. The outbox relay calls it in append order
// and retries undelivered events on its next pass.
type Publisher interface {
	Publish(ctx context.Context, e booking.Event) error
	Close() error
}

// LogPublisher writes events to the structured log instead of a broker.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e booking.Event) error {
	p.logger.InfoContext(ctx, "booking event",
		"event_id", e.ID,
		"type", e.Type.String(),
		"booking_id", e.BookingID,
		"resource_id", e.ResourceID,
		"status", e.Status.String())
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
