package shared

import (
	"context"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/domain/resource"
	"station-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one transaction; any error rolls everything back.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Resources() ResourceRepository
	Bookings() BookingRepository
	Users() UserRepository
	Events() EventRepository
}

type ResourceRepository interface {
	Create(ctx context.Context, res *resource.Resource) error
	Update(ctx context.Context, res *resource.Resource) error
	// Delete fails with KindForeignKeyViolated while any booking references the resource.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// FindByIDForUpdate locks the row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
}

type BookingRepository interface {
	// Create fails with KindExclusionViolated when an active booking of the
	// same resource overlaps.
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// ListActiveByResource returns pending/confirmed bookings ending after since.
	ListActiveByResource(ctx context.Context, resourceID uuid.UUID, since time.Time) ([]*booking.Booking, error)
	// Cancel flips an active, not yet elapsed booking to cancelled and
	// reports whether a row changed.
	Cancel(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*user.User, error)
	// UpdateProfile persists name, phone and updated_at only.
	UpdateProfile(ctx context.Context, u *user.User) error
	// Delete fails with KindForeignKeyViolated while any booking references the user.
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventRepository interface {
	Append(ctx context.Context, e booking.Event) error
	// FetchPending returns unpublished events oldest first.
	FetchPending(ctx context.Context, limit int) ([]booking.Event, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}
