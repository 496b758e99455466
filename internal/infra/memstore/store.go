// Package memstore is an in-process implementation of the unit of work and
// the read stores, used with STORE_DRIVER=memory and in use case tests.
//
// A transaction works on a private copy of the tables and swaps it in on
// success, so a failed transaction leaves nothing behind. Transactions are
// serialized by one mutex, which also gives FindByIDForUpdate its meaning.
package memstore

import (
	"context"
	"sync"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/domain/resource"
	"station-booking/internal/domain/user"
	"station-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type resourceRow struct {
	id        uuid.UUID
	params    resource.Params
	createdAt time.Time
	updatedAt time.Time
}

type bookingRow struct {
	id         uuid.UUID
	ownerID    uuid.UUID
	resourceID uuid.UUID
	start      time.Time
	end        time.Time
	status     booking.Status
	totalCents int64
	rateCents  int64
	createdAt  time.Time
	updatedAt  time.Time
}

type userRow struct {
	id        uuid.UUID
	email     string
	name      string
	phone     string
	hash      string
	role      user.Role
	createdAt time.Time
	updatedAt time.Time
}

type tables struct {
	resources map[uuid.UUID]resourceRow
	bookings  map[uuid.UUID]bookingRow
	users     map[uuid.UUID]userRow
	events    []booking.Event
}

func newTables() *tables {
	return &tables{
		resources: make(map[uuid.UUID]resourceRow),
		bookings:  make(map[uuid.UUID]bookingRow),
		users:     make(map[uuid.UUID]userRow),
	}
}

func (t *tables) clone() *tables {
	c := &tables{
		resources: make(map[uuid.UUID]resourceRow, len(t.resources)),
		bookings:  make(map[uuid.UUID]bookingRow, len(t.bookings)),
		users:     make(map[uuid.UUID]userRow, len(t.users)),
		events:    make([]booking.Event, len(t.events)),
	}
	for k, v := range t.resources {
		c.resources[k] = v
	}
	for k, v := range t.bookings {
		c.bookings[k] = v
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	copy(c.events, t.events)
	return c
}

type Store struct {
	mu   sync.RWMutex
	data *tables
}

func New() *Store {
	return &Store{data: newTables()}
}

// Within implements shared.UnitOfWork.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(ctx, &memTx{data: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) read(fn func(t *tables)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// Reset drops every row. Tests only.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = newTables()
}

type memTx struct {
	data *tables
}

func (t *memTx) Resources() shared.ResourceRepository { return &resourceRepo{data: t.data} }
func (t *memTx) Bookings() shared.BookingRepository   { return &bookingRepo{data: t.data} }
func (t *memTx) Users() shared.UserRepository         { return &userRepo{data: t.data} }
func (t *memTx) Events() shared.EventRepository       { return &eventRepo{data: t.data} }

func (r bookingRow) toDomain() *booking.Booking {
	// rows only ever hold validated intervals
	interval, _ := booking.NewInterval(r.start, r.end)
	return booking.ReconstructBooking(
		r.id, r.ownerID, r.resourceID,
		interval,
		r.status,
		moneyOf(r.totalCents), moneyOf(r.rateCents),
		r.createdAt, r.updatedAt,
	)
}

func (r resourceRow) toDomain() *resource.Resource {
	return resource.ReconstructResource(r.id, r.params, r.createdAt, r.updatedAt)
}
