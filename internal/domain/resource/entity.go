package resource

import (
	"errors"
	"strings"
	"time"

	"station-booking/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrNonPositiveRate     = errors.New("hourly rate must be greater than zero")
	ErrRateTooHigh         = errors.New("hourly rate must not exceed 1000000.00")
	ErrInvalidStatus       = errors.New("invalid resource status")
	ErrInvalidCategory     = errors.New("invalid resource category")
	ErrImageURLTooLong     = errors.New("image url is too long (max 2048 characters)")
)

const (
	MaxResourceNameLength = 255
	MaxImageURLLength     = 2048
	MaxHourlyRateCents    = 100_000_000
)

type Resource struct {
	id         uuid.UUID
	name       string
	category   Category
	specs      Specs
	imageURL   string
	hourlyRate money.Money
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

type Params struct {
	Name       string
	Category   Category
	Specs      Specs
	ImageURL   string
	HourlyRate money.Money
	Status     Status
}

// NewResource validates params. An empty status defaults to available.
func NewResource(p Params, now time.Time) (*Resource, error) {
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return &Resource{
		id:         uuid.New(),
		name:       strings.TrimSpace(p.Name),
		category:   p.Category,
		specs:      p.Specs,
		imageURL:   strings.TrimSpace(p.ImageURL),
		hourlyRate: p.HourlyRate,
		status:     p.Status,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructResource(
	id uuid.UUID,
	p Params,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:         id,
		name:       p.Name,
		category:   p.Category,
		specs:      p.Specs,
		imageURL:   p.ImageURL,
		hourlyRate: p.HourlyRate,
		status:     p.Status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Patch holds the fields of a partial update; nil means unchanged.
type Patch struct {
	Name       *string
	Category   *Category
	Specs      *Specs
	ImageURL   *string
	HourlyRate *money.Money
	Status     *Status
}

// Apply validates the patched state before mutating. Bookings already
// admitted keep their price.
func (r *Resource) Apply(p Patch, now time.Time) error {
	next := r.params()
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		next.Category = *p.Category
	}
	if p.Specs != nil {
		next.Specs = *p.Specs
	}
	if p.ImageURL != nil {
		next.ImageURL = strings.TrimSpace(*p.ImageURL)
	}
	if p.HourlyRate != nil {
		next.HourlyRate = *p.HourlyRate
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if err := next.validate(); err != nil {
		return err
	}

	r.name = next.Name
	r.category = next.Category
	r.specs = next.Specs
	r.imageURL = next.ImageURL
	r.hourlyRate = next.HourlyRate
	r.status = next.Status
	r.updatedAt = now
	return nil
}

func (r *Resource) SetStatus(s Status, now time.Time) error {
	if !s.IsValid() {
		return ErrInvalidStatus
	}
	r.status = s
	r.updatedAt = now
	return nil
}

func (r *Resource) IsAvailable() bool {
	return r.status == StatusAvailable
}

func (r *Resource) params() Params {
	return Params{
		Name:       r.name,
		Category:   r.category,
		Specs:      r.specs,
		ImageURL:   r.imageURL,
		HourlyRate: r.hourlyRate,
		Status:     r.status,
	}
}

func (p Params) validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	if !p.Category.IsValid() {
		return ErrInvalidCategory
	}
	if !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !p.HourlyRate.IsPositive() {
		return ErrNonPositiveRate
	}
	if p.HourlyRate.Cents() > MaxHourlyRateCents {
		return ErrRateTooHigh
	}
	if len(p.ImageURL) > MaxImageURLLength {
		return ErrImageURLTooLong
	}
	return nil
}

func (r *Resource) ID() uuid.UUID           { return r.id }
func (r *Resource) Name() string            { return r.name }
func (r *Resource) Category() Category      { return r.category }
func (r *Resource) Specs() Specs            { return r.specs }
func (r *Resource) ImageURL() string        { return r.imageURL }
func (r *Resource) HourlyRate() money.Money { return r.hourlyRate }
func (r *Resource) Status() Status          { return r.status }
func (r *Resource) CreatedAt() time.Time    { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time    { return r.updatedAt }
