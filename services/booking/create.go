package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "github.com/Philip2024394/website-massage--sub045/database/repository/booking"
	"github.com/Philip2024394/website-massage--sub045/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// duplicateWindow is how recently a customer may have opened a booking with
// the same provider before a new request is rejected as a duplicate.
const duplicateWindow = 5 * time.Minute

// minAdvanceNotice is the shortest lead time for a scheduled booking, so the
// provider has preparation and travel time.
const minAdvanceNotice = time.Hour

// ErrDuplicateBooking is returned when a customer already has an open
// booking with the same provider.
var ErrDuplicateBooking = errors.New("an open booking with this provider already exists")

// ErrTooSoon is returned when a scheduled booking starts in under an hour.
var ErrTooSoon = errors.New("bookings require minimum 1 hour advance notice")

// CreateBookingInput carries everything needed to open a booking request.
type CreateBookingInput struct {
	ProviderID    string              `json:"providerId"`
	ProviderType  models.ProviderType `json:"providerType"`
	ProviderName  string              `json:"providerName"`
	UserID        string              `json:"userId"`
	UserName      string              `json:"userName"`
	Service       int                 `json:"service"`
	StartTime     string              `json:"startTime"` // RFC 3339; empty for book-now
	TotalCost     int64               `json:"totalCost"`
	PaymentMethod string              `json:"paymentMethod"`
}

// CreateBooking validates and persists a new booking in Pending state and
// marks the provider engaged with it. The commission is NOT computed here;
// it activates only when the provider accepts.
func (svc *DefaultLifecycleService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	now := svc.now()

	booking := &models.Booking{
		ID:             uuid.New().String(),
		ProviderID:     input.ProviderID,
		ProviderType:   input.ProviderType,
		ProviderName:   input.ProviderName,
		UserID:         input.UserID,
		UserName:       input.UserName,
		Service:        input.Service,
		StartTime:      input.StartTime,
		TotalCost:      input.TotalCost,
		PaymentMethod:  input.PaymentMethod,
		Status:         models.StatusPending,
		ResponseStatus: models.ResponseAwaiting,
		CreatedAt:      now,
	}
	if _, err := ValidateBookingSchema(booking); err != nil {
		return nil, err
	}

	if input.StartTime != "" {
		start, err := time.Parse(time.RFC3339, input.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid startTime %q: %w", input.StartTime, err)
		}
		if start.Before(now.Add(minAdvanceNotice)) {
			return nil, ErrTooSoon
		}
	}

	if input.UserID != "" {
		existing, err := svc.Bookings.FindActiveForCustomer(ctx, input.UserID, input.ProviderID, now.Add(-duplicateWindow))
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Fail open: a broken duplicate check must not block bookings.
			svc.Logger.Warn("duplicate booking check failed",
				zap.String("userId", input.UserID), zap.Error(err))
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: booking %s is %s", ErrDuplicateBooking, existing.ID, existing.Status)
		}
	}

	deadline := now.Add(svc.responseWindow())
	booking.ResponseDeadline = &deadline

	if err := svc.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := svc.Providers.Assign(ctx, booking.ProviderID, booking.ID); err != nil {
		// The booking stands; an unassignable provider record is an
		// operational problem, not a customer-facing one.
		svc.Logger.Warn("failed to mark provider engaged",
			zap.String("providerId", booking.ProviderID),
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	svc.Logger.Info("booking created in Pending state",
		zap.String("bookingId", booking.ID),
		zap.String("providerId", booking.ProviderID),
		zap.Int64("totalCost", booking.TotalCost))
	return booking, nil
}
