package queries

import (
	"time"

	"github.com/google/uuid"
)

// ResourceView represents read-optimized resource data
type ResourceView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Specs           SpecsView `json:"specs"`
	ImageURL        string    `json:"image_url"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SpecsView struct {
	CPU     string `json:"cpu"`
	GPU     string `json:"gpu"`
	RAM     string `json:"ram"`
	Storage string `json:"storage"`
	Monitor string `json:"monitor"`
}

// BookingView carries the stored status; queries replace it with the
// effective status before returning.
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	ResourceID      uuid.UUID `json:"resource_id"`
	ResourceName    string    `json:"resource_name"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BusySlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityView struct {
	ResourceID uuid.UUID  `json:"resource_id"`
	Status     string     `json:"status"`
	From       time.Time  `json:"from"`
	To         time.Time  `json:"to"`
	Busy       []BusySlot `json:"busy"`
}

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AnalyticsView struct {
	From              *time.Time          `json:"from,omitempty"`
	To                *time.Time          `json:"to,omitempty"`
	TotalBookings     int                 `json:"total_bookings"`
	TotalRevenueCents int64               `json:"total_revenue_cents"`
	ActiveUsers       int                 `json:"active_users"`
	CancelledBookings int                 `json:"cancelled_bookings"`
	DailyStats        []DailyStat         `json:"daily_stats"`
	ResourceUsage     []ResourceUsageStat `json:"resource_usage"`
}

type DailyStat struct {
	Date         string `json:"date"`
	Bookings     int    `json:"bookings"`
	RevenueCents int64  `json:"revenue_cents"`
}

type ResourceUsageStat struct {
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	HoursBooked  float64   `json:"hours_booked"`
	Bookings     int       `json:"bookings"`
	RevenueCents int64     `json:"revenue_cents"`
}
