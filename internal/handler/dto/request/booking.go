package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID uuid.UUID `json:"resourceId" binding:"required"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
}
