package components

import (
	"station-booking/internal/domain/booking"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/config"
	"station-booking/internal/pkg/keylock"
	"station-booking/internal/pkg/password"
	"station-booking/internal/usecase"
	"station-booking/internal/usecase/commands"
	"station-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	keylock.New[uuid.UUID],
	fx.Annotate(
		booking.NewHourlyPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	booking.NewResolver,
	func(cfg config.Config) *password.Hasher {
		return password.NewHasher(cfg.Store.BcryptCost)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewResourceUseCase,
		commands.NewBookingUseCase,
		commands.NewUserUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewResourceQueries,
		queries.NewBookingQueries,
		queries.NewAnalyticsQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
