package bootstrap

import (
	"context"
	"log/slog"

	"gestion-turnos/internal/infra/events"
	"gestion-turnos/internal/pkg/config"
	"gestion-turnos/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventPublisher, error) {
	if cfg.RabbitMQ.URL == "" {
		logger.Info("RabbitMQ not configured, booking events are dropped")
		return events.NopPublisher{}, nil
	}

	publisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}
