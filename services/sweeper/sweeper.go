package sweeper

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingRepo "github.com/Philip2024394/website-massage--sub045/database/repository/booking"
	providerRepo "github.com/Philip2024394/website-massage--sub045/database/repository/provider"
	"github.com/Philip2024394/website-massage--sub045/models"
	"github.com/Philip2024394/website-massage--sub045/services/booking"
	"github.com/Philip2024394/website-massage--sub045/services/notification"

	"go.uber.org/zap"
)

// SessionChecker answers whether an authenticated session is currently
// available. Sweep ticks are silently skipped without one, so an idle
// deployment does not fill the logs with authorization failures.
type SessionChecker interface {
	HasSession(ctx context.Context) bool
}

// Config carries the sweeper's injected dependencies and tuning.
type Config struct {
	Bookings    bookingRepo.BookingRepository
	Providers   providerRepo.ProviderRepository
	Lifecycle   booking.LifecycleService
	Broadcaster notification.Broadcaster
	Guard       SessionChecker
	Logger      *zap.Logger

	// Interval between poll ticks; zero means DefaultInterval.
	Interval time.Duration
	// ResponseWindow is how long a pending booking may wait before it is
	// expired; zero means booking.DefaultResponseWindow.
	ResponseWindow time.Duration
	// Now overrides the clock for tests; nil means time.Now.
	Now func() time.Time
}

// DefaultInterval between sweep ticks.
const DefaultInterval = time.Minute

// Sweeper is the polling process that expires stale pending bookings,
// releases their providers and rebroadcasts the request to the pool. Each
// instance owns its timer; construct one per process and drive it with
// Start and Stop.
type Sweeper struct {
	cfg      Config
	stopChan chan struct{}
	stopOnce sync.Once

	// inFlight guards against overlapping ticks if Sweep is also invoked
	// manually while the timer loop is running.
	inFlight sync.Mutex
}

// New builds a Sweeper from its dependencies.
func New(cfg Config) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.ResponseWindow <= 0 {
		cfg.ResponseWindow = booking.DefaultResponseWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Sweeper{
		cfg:      cfg,
		stopChan: make(chan struct{}),
	}
}

// Start runs the polling loop in a background goroutine until Stop is
// called or the context is cancelled. Ticks never overlap: the loop runs
// each sweep to completion before waiting for the next tick.
func (s *Sweeper) Start(ctx context.Context) {
	s.cfg.Logger.Info("starting booking expiration sweeper",
		zap.Duration("interval", s.cfg.Interval),
		zap.Duration("responseWindow", s.cfg.ResponseWindow))

	go func() {
		s.Sweep(ctx)

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep(ctx)
			case <-s.stopChan:
				s.cfg.Logger.Info("booking expiration sweeper stopped")
				return
			case <-ctx.Done():
				s.cfg.Logger.Info("booking expiration sweeper cancelled")
				return
			}
		}
	}()
}

// Stop halts the polling loop. An in-flight tick runs to completion.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// Sweep runs one poll tick and returns how many bookings were expired.
// Failures on a single booking are logged and skipped; the tick keeps going.
func (s *Sweeper) Sweep(ctx context.Context) int {
	s.inFlight.Lock()
	defer s.inFlight.Unlock()

	if !s.cfg.Guard.HasSession(ctx) {
		// No authenticated session; skip quietly. The guard caches its
		// answer so this branch stays cheap under a tight interval.
		return 0
	}

	pending, err := s.cfg.Bookings.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		s.cfg.Logger.Error("failed to list pending bookings", zap.Error(err))
		return 0
	}

	now := s.cfg.Now()
	expired := 0
	for i := range pending {
		b := &pending[i]
		if b.Status == models.StatusExpired {
			// Already handled by an earlier pass or another sweeper.
			continue
		}
		if now.Sub(b.CreatedAt) <= s.cfg.ResponseWindow {
			continue
		}
		if err := s.expireAndRebroadcast(ctx, b, now); err != nil {
			s.cfg.Logger.Error("failed to process overdue booking",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		expired++
	}

	if expired > 0 {
		s.cfg.Logger.Info("sweep tick complete", zap.Int("expired", expired))
	}
	return expired
}

// expireAndRebroadcast resolves one overdue booking: expire, release the
// provider, rebroadcast to the available pool.
func (s *Sweeper) expireAndRebroadcast(ctx context.Context, b *models.Booking, now time.Time) error {
	_, err := s.cfg.Lifecycle.ExpireBooking(ctx, b.ID, "Provider response timeout")
	if errors.Is(err, bookingRepo.ErrStatusConflict) || errors.Is(err, booking.ErrInvalidTransition) {
		// Another writer moved the booking first; nothing left to do here.
		s.cfg.Logger.Debug("booking already transitioned, skipping",
			zap.String("bookingId", b.ID))
		return nil
	}
	if err != nil {
		return err
	}

	s.releaseProvider(ctx, b)
	s.rebroadcast(ctx, b, now)
	return nil
}

// releaseProvider frees the assigned provider if it is still pointing at
// this booking. A missing or reassigned provider is logged and tolerated;
// the booking is already expired and must stay that way.
func (s *Sweeper) releaseProvider(ctx context.Context, b *models.Booking) {
	if b.ProviderID == "" {
		s.cfg.Logger.Warn("expired booking has no provider to release",
			zap.String("bookingId", b.ID))
		return
	}

	released, err := s.cfg.Providers.ReleaseIfAssigned(ctx, b.ProviderID, b.ID)
	if errors.Is(err, providerRepo.ErrProviderNotFound) {
		s.cfg.Logger.Warn("provider record not found during release",
			zap.String("providerId", b.ProviderID),
			zap.String("bookingId", b.ID))
		return
	}
	if err != nil {
		s.cfg.Logger.Error("failed to release provider",
			zap.String("providerId", b.ProviderID),
			zap.String("bookingId", b.ID), zap.Error(err))
		return
	}
	if !released {
		s.cfg.Logger.Info("provider already moved to another booking, not released",
			zap.String("providerId", b.ProviderID),
			zap.String("bookingId", b.ID))
	}
}

// rebroadcast notifies every currently available provider about the booking
// and records the broadcast on it. An empty pool is a no-op, not a failure.
func (s *Sweeper) rebroadcast(ctx context.Context, b *models.Booking, now time.Time) {
	available, err := s.cfg.Providers.ListAvailable(ctx)
	if err != nil {
		s.cfg.Logger.Error("failed to list available providers for rebroadcast",
			zap.String("bookingId", b.ID), zap.Error(err))
		return
	}

	notified := 0
	if len(available) == 0 {
		s.cfg.Logger.Info("no available providers to rebroadcast to",
			zap.String("bookingId", b.ID))
	} else {
		notified, err = s.cfg.Broadcaster.BroadcastBookingRequest(ctx, *b, available)
		if err != nil {
			s.cfg.Logger.Error("rebroadcast failed",
				zap.String("bookingId", b.ID), zap.Error(err))
			return
		}
	}

	if err := s.cfg.Bookings.MarkBroadcast(ctx, b.ID, now, notified); err != nil {
		s.cfg.Logger.Error("failed to record broadcast on booking",
			zap.String("bookingId", b.ID), zap.Error(err))
		return
	}
	s.cfg.Logger.Info("booking rebroadcast to provider pool",
		zap.String("bookingId", b.ID), zap.Int("notified", notified))
}
