package memstore

import (
	"context"
	"sort"
	"time"

	"station-booking/internal/domain/booking"
	"station-booking/internal/domain/money"
	"station-booking/internal/domain/resource"
	"station-booking/internal/domain/user"
	"station-booking/internal/infra"

	"github.com/google/uuid"
)

func moneyOf(cents int64) money.Money {
	return money.FromCents(cents)
}

type resourceRepo struct {
	data *tables
}

func (r *resourceRepo) Create(_ context.Context, res *resource.Resource) error {
	if _, ok := r.data.resources[res.ID()]; ok {
		return infra.WrapRepoErr("resource already exists", nil, infra.KindDuplicateKey)
	}
	r.data.resources[res.ID()] = resourceRowOf(res)
	return nil
}

func (r *resourceRepo) Update(_ context.Context, res *resource.Resource) error {
	if _, ok := r.data.resources[res.ID()]; !ok {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	r.data.resources[res.ID()] = resourceRowOf(res)
	return nil
}

func (r *resourceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.data.resources[id]; !ok {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	for _, b := range r.data.bookings {
		if b.resourceID == id {
			return infra.WrapRepoErr("resource is referenced by bookings", nil, infra.KindForeignKeyViolated)
		}
	}
	delete(r.data.resources, id)
	return nil
}

func (r *resourceRepo) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, ok := r.data.resources[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return row.toDomain(), nil
}

func (r *resourceRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.FindByID(ctx, id)
}

func resourceRowOf(res *resource.Resource) resourceRow {
	return resourceRow{
		id: res.ID(),
		params: resource.Params{
			Name:       res.Name(),
			Category:   res.Category(),
			Specs:      res.Specs(),
			ImageURL:   res.ImageURL(),
			HourlyRate: res.HourlyRate(),
			Status:     res.Status(),
		},
		createdAt: res.CreatedAt(),
		updatedAt: res.UpdatedAt(),
	}
}

type bookingRepo struct {
	data *tables
}

// Create enforces the same rules as the PostgreSQL schema: the resource must
// exist and active bookings of one resource must not overlap.
func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, ok := r.data.resources[b.ResourceID()]; !ok {
		return infra.WrapRepoErr("booking references a missing resource", nil, infra.KindForeignKeyViolated)
	}
	if b.Status().IsActive() {
		for _, other := range r.data.bookings {
			if other.resourceID != b.ResourceID() || !other.status.IsActive() {
				continue
			}
			if other.start.Before(b.Interval().End()) && b.Interval().Start().Before(other.end) {
				return infra.WrapRepoErr("booking overlaps an active booking", nil, infra.KindExclusionViolated)
			}
		}
	}
	r.data.bookings[b.ID()] = bookingRow{
		id:         b.ID(),
		ownerID:    b.OwnerID(),
		resourceID: b.ResourceID(),
		start:      b.Interval().Start(),
		end:        b.Interval().End(),
		status:     b.Status(),
		totalCents: b.TotalPrice().Cents(),
		rateCents:  b.HourlyRate().Cents(),
		createdAt:  b.CreatedAt(),
		updatedAt:  b.UpdatedAt(),
	}
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, ok := r.data.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return row.toDomain(), nil
}

func (r *bookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *bookingRepo) ListActiveByResource(_ context.Context, resourceID uuid.UUID, since time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, row := range r.data.bookings {
		if row.resourceID == resourceID && row.status.IsActive() && row.end.After(since) {
			out = append(out, row.toDomain())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Interval().Start().Before(out[j].Interval().Start())
	})
	return out, nil
}

func (r *bookingRepo) Cancel(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	row, ok := r.data.bookings[id]
	if !ok || !row.status.IsActive() || !row.end.After(at) {
		return false, nil
	}
	row.status = booking.StatusCancelled
	row.updatedAt = at
	r.data.bookings[id] = row
	return true, nil
}

type userRepo struct {
	data *tables
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.data.users {
		if existing.email == u.Email().Value() {
			return infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
		}
	}
	r.data.users[u.ID()] = userRow{
		id:        u.ID(),
		email:     u.Email().Value(),
		name:      u.Name().Value(),
		phone:     u.Phone().Value(),
		hash:      u.PasswordHash(),
		role:      u.Role(),
		createdAt: u.CreatedAt(),
		updatedAt: u.UpdatedAt(),
	}
	return nil
}

func (r *userRepo) FindByEmail(_ context.Context, email user.Email) (*user.User, error) {
	for _, row := range r.data.users {
		if row.email == email.Value() {
			return row.toDomain()
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r *userRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*user.User, error) {
	row, ok := r.data.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return row.toDomain()
}

func (r *userRepo) UpdateProfile(_ context.Context, u *user.User) error {
	row, ok := r.data.users[u.ID()]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	row.name = u.Name().Value()
	row.phone = u.Phone().Value()
	row.updatedAt = u.UpdatedAt()
	r.data.users[u.ID()] = row
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.data.users[id]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	for _, b := range r.data.bookings {
		if b.ownerID == id {
			return infra.WrapRepoErr("user is referenced by bookings", nil, infra.KindForeignKeyViolated)
		}
	}
	delete(r.data.users, id)
	return nil
}

func (r userRow) toDomain() (*user.User, error) {
	email, err := user.NewEmail(r.email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	name, err := user.NewName(r.name)
	if err != nil {
		return nil, infra.WrapRepoErr("stored name is invalid", err)
	}
	phone, err := user.NewPhone(r.phone)
	if err != nil {
		return nil, infra.WrapRepoErr("stored phone is invalid", err)
	}
	return user.ReconstructUser(r.id, email, name, phone, r.hash, r.role, r.createdAt, r.updatedAt), nil
}

type eventRepo struct {
	data *tables
}

func (r *eventRepo) Append(_ context.Context, e booking.Event) error {
	r.data.events = append(r.data.events, e)
	return nil
}

func (r *eventRepo) FetchPending(_ context.Context, limit int) ([]booking.Event, error) {
	var out []booking.Event
	for _, e := range r.data.events {
		if len(out) == limit {
			break
		}
		if e.PublishedAt == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *eventRepo) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	for i := range r.data.events {
		if _, ok := want[r.data.events[i].ID]; ok && r.data.events[i].PublishedAt == nil {
			stamp := at
			r.data.events[i].PublishedAt = &stamp
		}
	}
	return nil
}
