package bootstrap

import (
	"context"
	"log/slog"

	"station-booking/internal/infra/events"
	"station-booking/internal/pkg/clock"
	"station-booking/internal/pkg/config"
	"station-booking/internal/usecase/shared"
	"station-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewOutboxRelay,
	),
	fx.Invoke(runOutboxRelay),
)

func NewOutboxRelay(uow shared.UnitOfWork, pub events.Publisher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *worker.OutboxRelay {
	return worker.NewOutboxRelay(uow, pub, clk, cfg.Events.RelayInterval, cfg.Events.RelayBatchSize, logger)
}

func runOutboxRelay(lc fx.Lifecycle, relay *worker.OutboxRelay) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			relay.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return relay.Stop(ctx)
		},
	})
}
