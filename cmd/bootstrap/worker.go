package bootstrap

import (
	"context"

	"gestion-turnos/internal/pkg/clock"
	"gestion-turnos/internal/pkg/config"
	"gestion-turnos/internal/usecase/commands"
	"gestion-turnos/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewBookingFinisher,
	),
	fx.Invoke(startBookingFinisher),
)

func NewBookingFinisher(cfg config.Config, bookings commands.BookingCommands, clk clock.Clock) *worker.BookingFinisher {
	return worker.NewBookingFinisher(bookings, clk, cfg.Worker.FinishInterval)
}

func startBookingFinisher(lc fx.Lifecycle, finisher *worker.BookingFinisher) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				finisher.Start(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
