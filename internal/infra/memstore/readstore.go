package memstore

import (
	"context"
	"sort"
	"time"

	"station-booking/internal/infra"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceReadStore struct {
	s *Store
}

func NewResourceReadStore(s *Store) *ResourceReadStore {
	return &ResourceReadStore{s: s}
}

func (r *ResourceReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	var (
		row resourceRow
		ok  bool
	)
	r.s.read(func(t *tables) { row, ok = t.resources[id] })
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return resourceView(row), nil
}

func (r *ResourceReadStore) List(_ context.Context, f queries.ResourceFilter) ([]*queries.ResourceView, error) {
	out := []*queries.ResourceView{}
	r.s.read(func(t *tables) {
		for _, row := range t.resources {
			if f.Status != nil && row.params.Status.String() != *f.Status {
				continue
			}
			if f.Category != nil && row.params.Category.String() != *f.Category {
				continue
			}
			out = append(out, resourceView(row))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *ResourceReadStore) BusySlots(_ context.Context, resourceID uuid.UUID, from, to time.Time) ([]queries.BusySlot, error) {
	out := []queries.BusySlot{}
	r.s.read(func(t *tables) {
		for _, b := range t.bookings {
			if b.resourceID == resourceID && b.status.IsActive() && b.start.Before(to) && from.Before(b.end) {
				out = append(out, queries.BusySlot{Start: b.start, End: b.end})
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func resourceView(row resourceRow) *queries.ResourceView {
	p := row.params
	return &queries.ResourceView{
		ID:       row.id,
		Name:     p.Name,
		Category: p.Category.String(),
		Specs: queries.SpecsView{
			CPU:     p.Specs.CPU,
			GPU:     p.Specs.GPU,
			RAM:     p.Specs.RAM,
			Storage: p.Specs.Storage,
			Monitor: p.Specs.Monitor,
		},
		ImageURL:        p.ImageURL,
		HourlyRateCents: p.HourlyRate.Cents(),
		Status:          p.Status.String(),
		CreatedAt:       row.createdAt,
		UpdatedAt:       row.updatedAt,
	}
}

type BookingReadStore struct {
	s *Store
}

func NewBookingReadStore(s *Store) *BookingReadStore {
	return &BookingReadStore{s: s}
}

func (r *BookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view *queries.BookingView
	r.s.read(func(t *tables) {
		if row, ok := t.bookings[id]; ok {
			view = bookingView(t, row)
		}
	})
	if view == nil {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return view, nil
}

func (r *BookingReadStore) List(_ context.Context, f queries.BookingFilter, after *queries.Keyset, limit int) ([]*queries.BookingView, error) {
	out := []*queries.BookingView{}
	r.s.read(func(t *tables) {
		var rows []bookingRow
		for _, row := range t.bookings {
			if f.OwnerID != nil && row.ownerID != *f.OwnerID {
				continue
			}
			if f.ResourceID != nil && row.resourceID != *f.ResourceID {
				continue
			}
			if f.Status != nil && row.status.Effective(row.end, f.Now) != *f.Status {
				continue
			}
			if after != nil && !isAfter(row, after) {
				continue
			}
			rows = append(rows, row)
		}

		sort.Slice(rows, func(i, j int) bool { return newerFirst(rows[i], rows[j]) })
		if limit > 0 && len(rows) > limit {
			rows = rows[:limit]
		}
		for _, row := range rows {
			out = append(out, bookingView(t, row))
		}
	})
	return out, nil
}

// keyset order compares created_at at microsecond precision, like PostgreSQL
func micro(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}

func newerFirst(a, b bookingRow) bool {
	return newer(a.createdAt, a.id, b.createdAt, b.id)
}

func isAfter(row bookingRow, k *queries.Keyset) bool {
	return pastKeyset(row.createdAt, row.id, k)
}

func newer(aAt time.Time, aID uuid.UUID, bAt time.Time, bID uuid.UUID) bool {
	ac, bc := micro(aAt), micro(bAt)
	if !ac.Equal(bc) {
		return ac.After(bc)
	}
	return aID.String() > bID.String()
}

// pastKeyset reports whether (at, id) sorts after k in newest-first order.
func pastKeyset(at time.Time, id uuid.UUID, k *queries.Keyset) bool {
	c := micro(at)
	if !c.Equal(k.CreatedAt) {
		return c.Before(k.CreatedAt)
	}
	return id.String() < k.ID.String()
}

func bookingView(t *tables, row bookingRow) *queries.BookingView {
	return &queries.BookingView{
		ID:              row.id,
		OwnerID:         row.ownerID,
		ResourceID:      row.resourceID,
		ResourceName:    t.resources[row.resourceID].params.Name,
		Start:           row.start,
		End:             row.end,
		Status:          row.status.String(),
		TotalPriceCents: row.totalCents,
		HourlyRateCents: row.rateCents,
		CreatedAt:       row.createdAt,
		UpdatedAt:       row.updatedAt,
	}
}

type UserReadStore struct {
	s *Store
}

func NewUserReadStore(s *Store) *UserReadStore {
	return &UserReadStore{s: s}
}

func (r *UserReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	var (
		row userRow
		ok  bool
	)
	r.s.read(func(t *tables) { row, ok = t.users[id] })
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return userView(row), nil
}

func (r *UserReadStore) List(_ context.Context, f queries.UserFilter, after *queries.Keyset, limit int) ([]*queries.UserView, error) {
	var rows []userRow
	r.s.read(func(t *tables) {
		for _, row := range t.users {
			if f.Role != nil && row.role != *f.Role {
				continue
			}
			if after != nil && !pastKeyset(row.createdAt, row.id, after) {
				continue
			}
			rows = append(rows, row)
		}
	})

	sort.Slice(rows, func(i, j int) bool {
		return newer(rows[i].createdAt, rows[i].id, rows[j].createdAt, rows[j].id)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]*queries.UserView, 0, len(rows))
	for _, row := range rows {
		out = append(out, userView(row))
	}
	return out, nil
}

func userView(row userRow) *queries.UserView {
	return &queries.UserView{
		ID:        row.id,
		Email:     row.email,
		Name:      row.name,
		Phone:     row.phone,
		Role:      row.role.String(),
		CreatedAt: row.createdAt,
		UpdatedAt: row.updatedAt,
	}
}
