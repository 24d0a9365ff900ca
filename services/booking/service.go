package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "github.com/Philip2024394/website-massage--sub045/database/repository/booking"
	commissionRepo "github.com/Philip2024394/website-massage--sub045/database/repository/commission"
	providerRepo "github.com/Philip2024394/website-massage--sub045/database/repository/provider"
	"github.com/Philip2024394/website-massage--sub045/models"

	"go.uber.org/zap"
)

// ErrInvalidTransition is returned when a caller asks for a status move that
// is not in the transition table. It is a caller error; retrying without
// re-reading the booking will not help.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// ErrMissingProvider is returned when a booking without an assigned provider
// is asked to leave its initial state.
var ErrMissingProvider = errors.New("booking has no assigned provider")

// LifecycleService manages booking status transitions and the commission
// records gated on them.
type LifecycleService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error)
	AcceptBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, reason string) (*models.Booking, error)
	DeclineBooking(ctx context.Context, bookingID, reason string) (*models.Booking, error)
	ExpireBooking(ctx context.Context, bookingID, reason string) (*models.Booking, error)
	RecordAcceptedCommission(ctx context.Context, booking *models.Booking) error
	CommissionSummary(ctx context.Context, start, end *time.Time) (models.CommissionSummary, error)
}

// DefaultLifecycleService implements LifecycleService.
type DefaultLifecycleService struct {
	Bookings    bookingRepo.BookingRepository
	Commissions commissionRepo.CommissionRepository
	Providers   providerRepo.ProviderRepository
	Logger      *zap.Logger

	// ResponseWindow is how long a provider has to respond to a pending
	// booking. Zero falls back to DefaultResponseWindow.
	ResponseWindow time.Duration

	// Clock override for tests; nil means time.Now.
	Now func() time.Time
}

// DefaultResponseWindow is the authoritative provider response timeout.
const DefaultResponseWindow = 5 * time.Minute

func (svc *DefaultLifecycleService) responseWindow() time.Duration {
	if svc.ResponseWindow > 0 {
		return svc.ResponseWindow
	}
	return DefaultResponseWindow
}

func (svc *DefaultLifecycleService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}
