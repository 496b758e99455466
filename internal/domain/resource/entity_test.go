//go:build unit

package resource_test

import (
	"strings"
	"testing"
	"time"

	"station-booking/internal/domain/money"
	"station-booking/internal/domain/resource"
	"station-booking/internal/pkg/ptr"
	"station-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ResourceBuilder)
	errIs  error
}

func TestResource(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewResourceBuilder().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "Station A-01", actual.Name())
		assert.Equal(t, resource.CategoryGaming, actual.Category())
		assert.Equal(t, int64(1000), actual.HourlyRate().Cents())
		assert.True(t, actual.IsAvailable())
		assert.Equal(t, "RTX 4070", actual.Specs().GPU)
	})

	t.Run("empty status defaults to available", func(t *testing.T) {
		actual, err := builder.NewResourceBuilder().WithStatus("").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, resource.StatusAvailable, actual.Status())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.ResourceBuilder) { b.WithName("  ") },
				errIs:  resource.ErrEmptyResourceName,
			},
			{
				name:   "name too long",
				mutate: func(b *builder.ResourceBuilder) { b.WithName(strings.Repeat("x", resource.MaxResourceNameLength+1)) },
				errIs:  resource.ErrResourceNameTooLong,
			},
			{
				name:   "zero rate",
				mutate: func(b *builder.ResourceBuilder) { b.WithHourlyRateCents(0) },
				errIs:  resource.ErrNonPositiveRate,
			},
			{
				name:   "negative rate",
				mutate: func(b *builder.ResourceBuilder) { b.WithHourlyRateCents(-100) },
				errIs:  resource.ErrNonPositiveRate,
			},
			{
				name:   "rate above the ceiling",
				mutate: func(b *builder.ResourceBuilder) { b.WithHourlyRateCents(resource.MaxHourlyRateCents + 1) },
				errIs:  resource.ErrRateTooHigh,
			},
			{
				name:   "unknown category",
				mutate: func(b *builder.ResourceBuilder) { b.WithCategory("vr") },
				errIs:  resource.ErrInvalidCategory,
			},
			{
				name:   "unknown status",
				mutate: func(b *builder.ResourceBuilder) { b.WithStatus("retired") },
				errIs:  resource.ErrInvalidStatus,
			},
			{
				name:   "image url too long",
				mutate: func(b *builder.ResourceBuilder) { b.WithImageURL(strings.Repeat("u", resource.MaxImageURLLength+1)) },
				errIs:  resource.ErrImageURLTooLong,
			},
			{
				name:   "maintenance is a valid initial status",
				mutate: func(b *builder.ResourceBuilder) { b.InMaintenance() },
			},
		})
	})
}

func TestResourceApply(t *testing.T) {
	later := time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("partial patch keeps other fields", func(t *testing.T) {
		res := builder.NewResourceBuilder().MustBuildDomain()

		err := res.Apply(resource.Patch{HourlyRate: ptr.Of(money.FromCents(1500))}, later)
		require.NoError(t, err)

		assert.Equal(t, int64(1500), res.HourlyRate().Cents())
		assert.Equal(t, "Station A-01", res.Name())
		assert.Equal(t, later, res.UpdatedAt())
	})

	t.Run("invalid patch leaves resource untouched", func(t *testing.T) {
		res := builder.NewResourceBuilder().MustBuildDomain()
		before := res.UpdatedAt()

		err := res.Apply(resource.Patch{
			Name:       ptr.Of("Renamed"),
			HourlyRate: ptr.Of(money.FromCents(0)),
		}, later)

		require.ErrorIs(t, err, resource.ErrNonPositiveRate)
		assert.Equal(t, "Station A-01", res.Name())
		assert.Equal(t, int64(1000), res.HourlyRate().Cents())
		assert.Equal(t, before, res.UpdatedAt())
	})

	t.Run("set status", func(t *testing.T) {
		res := builder.NewResourceBuilder().MustBuildDomain()

		require.NoError(t, res.SetStatus(resource.StatusMaintenance, later))
		assert.False(t, res.IsAvailable())

		require.ErrorIs(t, res.SetStatus("broken", later), resource.ErrInvalidStatus)
		assert.Equal(t, resource.StatusMaintenance, res.Status())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewResourceBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
