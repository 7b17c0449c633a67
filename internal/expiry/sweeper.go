package expiry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
)

// Store is the slice of the listing repository the sweeper needs.
type Store interface {
	DeactivateExpiredOrders(ctx context.Context, now time.Time) (int64, error)
	DeactivateExpiredTrips(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically deactivates expired listings. A sweep failure never
// stops the loop; the next attempt just comes sooner.
type Sweeper struct {
	store    Store
	interval time.Duration
	backoff  time.Duration
	now      func() time.Time
}

// NewSweeper builds a sweeper over the given store.
func NewSweeper(store Store, interval, backoff time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if backoff <= 0 {
		backoff = time.Hour
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		backoff:  backoff,
		now:      time.Now,
	}
}

// Run sweeps once immediately, then loops until ctx is done. Listings must
// never linger expired-but-active for a full interval after a restart.
func (s *Sweeper) Run(ctx context.Context) {
	wait := s.sweep(ctx)
	for {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info(ctx, "sweeper", "sweep.stop")
			return
		case <-timer.C:
		}
		wait = s.sweep(ctx)
	}
}

// SweepOnce deactivates expired orders and trips independently and returns
// the per-kind counts. Errors from both kinds are joined.
func (s *Sweeper) SweepOnce(ctx context.Context) (orders, trips int64, err error) {
	now := s.now()
	orders, errOrders := s.store.DeactivateExpiredOrders(ctx, now)
	trips, errTrips := s.store.DeactivateExpiredTrips(ctx, now)
	return orders, trips, errors.Join(errOrders, errTrips)
}

func (s *Sweeper) sweep(ctx context.Context) time.Duration {
	start := time.Now()
	orders, trips, err := s.SweepOnce(ctx)
	if err != nil {
		logger.Error(ctx, "sweeper", "sweep.fail",
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
			slog.Duration("retry_in", s.backoff),
		)
		return s.backoff
	}
	logger.Info(ctx, "sweeper", "sweep.done",
		slog.Int64("orders_deactivated", orders),
		slog.Int64("trips_deactivated", trips),
		slog.Duration("duration", logger.Took(start)),
	)
	return s.interval
}
