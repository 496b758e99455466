package response

import (
	"time"

	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type DailyStatResponse struct {
	Date         string `json:"date"`
	Bookings     int    `json:"bookings"`
	RevenueCents int64  `json:"revenueCents"`
}

type ResourceUsageResponse struct {
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	HoursBooked  float64   `json:"hoursBooked"`
	Bookings     int       `json:"bookings"`
	RevenueCents int64     `json:"revenueCents"`
}

type AnalyticsResponse struct {
	From              *time.Time              `json:"from,omitempty"`
	To                *time.Time              `json:"to,omitempty"`
	TotalBookings     int                     `json:"totalBookings"`
	TotalRevenueCents int64                   `json:"totalRevenueCents"`
	ActiveUsers       int                     `json:"activeUsers"`
	CancelledBookings int                     `json:"cancelledBookings"`
	DailyStats        []DailyStatResponse     `json:"dailyStats"`
	ResourceUsage     []ResourceUsageResponse `json:"resourceUsage"`
}

func FromAnalyticsView(v *queries.AnalyticsView) AnalyticsResponse {
	var out AnalyticsResponse
	_ = copier.Copy(&out, v)

	// element types differ only in tags
	out.DailyStats = make([]DailyStatResponse, 0, len(v.DailyStats))
	for _, d := range v.DailyStats {
		out.DailyStats = append(out.DailyStats, DailyStatResponse(d))
	}
	out.ResourceUsage = make([]ResourceUsageResponse, 0, len(v.ResourceUsage))
	for _, u := range v.ResourceUsage {
		out.ResourceUsage = append(out.ResourceUsage, ResourceUsageResponse(u))
	}
	return out
}
