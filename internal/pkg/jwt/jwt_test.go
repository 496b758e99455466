//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"station-booking/internal/domain/user"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, clk clock.Clock) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewService("unit-test-secret", time.Hour, "station-booking", clk)
	require.NoError(t, err)
	return svc
}

func TestService(t *testing.T) {
	now := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("round trip keeps subject and role", func(t *testing.T) {
		svc := newService(t, clock.NewMockClock(now))
		userID := uuid.New()

		token, err := svc.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("expired token is reported as expired", func(t *testing.T) {
		clk := clock.NewMockClock(now)
		svc := newService(t, clk)

		token, err := svc.GenerateToken(uuid.New(), user.RoleUser)
		require.NoError(t, err)

		clk.Add(2 * time.Hour)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("token signed with another secret is invalid", func(t *testing.T) {
		clk := clock.NewMockClock(now)
		other, err := jwt.NewService("another-secret", time.Hour, "station-booking", clk)
		require.NoError(t, err)

		token, err := other.GenerateToken(uuid.New(), user.RoleUser)
		require.NoError(t, err)

		_, err = newService(t, clk).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("unsigned token is invalid", func(t *testing.T) {
		token := gojwt.NewWithClaims(gojwt.SigningMethodNone, jwt.Claims{UserID: uuid.New(), Role: "admin"})
		raw, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = newService(t, clock.NewMockClock(now)).ValidateToken(raw)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage is invalid", func(t *testing.T) {
		_, err := newService(t, clock.NewMockClock(now)).ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("empty secret is refused", func(t *testing.T) {
		_, err := jwt.NewService("", time.Hour, "station-booking", clock.NewMockClock(now))
		assert.ErrorIs(t, err, jwt.ErrEmptySecret)
	})
}
