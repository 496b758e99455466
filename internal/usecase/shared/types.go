package shared

import (
	"context"

	"station-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated (subject, role) pair a request runs as.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// ResourceCache caches catalog list results by an opaque key. Implementations
// swallow their own failures: a miss is indistinguishable from an outage.
type ResourceCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
	Invalidate(ctx context.Context)
}
