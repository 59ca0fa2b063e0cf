package worker

import (
	"context"
	"log/slog"
	"time"

	"gestion-turnos/internal/pkg/clock"
)

type ElapsedFinisher interface {
	FinishElapsed(ctx context.Context, now time.Time) (int, error)
}

// BookingFinisher moves ACTIVE bookings to FINISHED once their end time has passed.
type BookingFinisher struct {
	bookings ElapsedFinisher
	clock    clock.Clock
	interval time.Duration
}

func NewBookingFinisher(bookings ElapsedFinisher, clock clock.Clock, interval time.Duration) *BookingFinisher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &BookingFinisher{
		bookings: bookings,
		clock:    clock,
		interval: interval,
	}
}

// Start runs one pass right away, then one per interval. It blocks until ctx is cancelled.
func (w *BookingFinisher) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("booking finisher started", "interval", w.interval.String())

	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("booking finisher stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

func (w *BookingFinisher) RunOnce(ctx context.Context) int {
	finished, err := w.bookings.FinishElapsed(ctx, w.clock.Now())
	if err != nil {
		slog.Error("failed to finish elapsed bookings", "finished", finished, "error", err)
		return finished
	}
	if finished > 0 {
		slog.Info("finished elapsed bookings", "count", finished)
	}
	return finished
}
