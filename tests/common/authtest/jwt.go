//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"station-booking/internal/domain/user"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/config"
	"station-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := h.cfg.TokenDuration()
	require.NoError(t, err)
	return h.sign(t, clock.NewRealClock(), duration, userID, role)
}

// CreateExpiredToken signs a token whose lifetime ended an hour ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	past := clock.NewMockClock(time.Now().Add(-2 * time.Hour))
	return h.sign(t, past, time.Hour, userID, role)
}

func (h *JWTHelper) sign(t *testing.T, clk clock.Clock, d time.Duration, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service, err := jwt.NewService(h.cfg.Secret, d, h.cfg.Issuer, clk)
	require.NoError(t, err)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
