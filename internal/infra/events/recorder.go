package events

import (
	"context"
	"sync"

	"station-booking/internal/domain/booking"
)

// Recorder keeps published events in memory. It can be told to fail so
// callers can exercise redelivery.
type Recorder struct {
	mu     sync.Mutex
	events []booking.Event
	err    error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, e booking.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error {
	return nil
}

// FailWith makes subsequent publishes return err; nil restores delivery.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Recorder) Events() []booking.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]booking.Event, len(r.events))
	copy(out, r.events)
	return out
}
