package bootstrap

import (
	"context"
	"log/slog"

	"station-booking/internal/infra/events"
	"station-booking/internal/pkg/config"
	"station-booking/internal/pkg/errs"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewPublisher,
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (events.Publisher, error) {
	var (
		pub events.Publisher
		err error
	)
	switch cfg.Events.Driver {
	case config.EventsDriverRabbitMQ:
		pub, err = events.NewRabbitMQPublisher(cfg.Events.RabbitMQURL, cfg.Events.RabbitMQExchange)
	case config.EventsDriverKafka:
		pub = events.NewKafkaPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic)
	case config.EventsDriverLog:
		pub = events.NewLogPublisher(logger)
	default:
		return nil, errs.Newf("unknown EVENTS_DRIVER %q", cfg.Events.Driver)
	}
	if err != nil {
		return nil, errs.Wrap(err, "failed to create event publisher")
	}

	logger.Info("イベント発行先を設定しました", "driver", cfg.Events.Driver)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
