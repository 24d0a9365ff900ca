package booking

import (
	"context"
	"fmt"

	"github.com/Philip2024394/website-massage--sub045/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// transition validates and applies one lifecycle edge, then returns the
// refreshed booking. The write is conditional on the status read here, so a
// concurrent transition on the same booking surfaces as ErrStatusConflict
// from the repository instead of silently overwriting.
func (svc *DefaultLifecycleService) transition(ctx context.Context, bookingID string, to models.BookingStatus, extra bson.M) (*models.Booking, error) {
	booking, err := svc.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Expiry must go through even for a booking whose provider reference is
	// missing or was never written; the sweeper logs and skips the release.
	if booking.ProviderID == "" && to != models.StatusExpired {
		return nil, ErrMissingProvider
	}
	if !IsValidTransition(booking.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	set := bson.M{"status": to}
	for k, v := range extra {
		set[k] = v
	}
	if err := svc.Bookings.UpdateStatusIf(ctx, bookingID, booking.Status, set); err != nil {
		return nil, err
	}
	return svc.Bookings.GetByID(ctx, bookingID)
}

// GetBooking returns a booking by id.
func (svc *DefaultLifecycleService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return svc.Bookings.GetByID(ctx, bookingID)
}

// GetProviderBookings returns the bookings assigned to a provider.
func (svc *DefaultLifecycleService) GetProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error) {
	return svc.Bookings.ListByProvider(ctx, providerID)
}

// AcceptBooking moves a pending booking to Accepted and records the
// platform commission. Commission recording is idempotent: a record that
// already exists for the booking is kept as-is and acceptance still
// succeeds, so a retried accept cannot double-charge.
func (svc *DefaultLifecycleService) AcceptBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	now := svc.now()
	booking, err := svc.transition(ctx, bookingID, models.StatusAccepted, bson.M{
		"confirmedAt":            now,
		"providerResponseStatus": models.ResponseConfirmed,
	})
	if err != nil {
		return nil, err
	}

	if err := svc.RecordAcceptedCommission(ctx, booking); err != nil {
		// Acceptance already happened; a failed commission write is flagged
		// for manual reconciliation rather than rolling the booking back.
		svc.Logger.Error("failed to record commission on acceptance",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	svc.Logger.Info("booking accepted", zap.String("bookingId", booking.ID))
	return booking, nil
}

// ConfirmBooking moves an accepted booking to Confirmed.
func (svc *DefaultLifecycleService) ConfirmBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := svc.transition(ctx, bookingID, models.StatusConfirmed, bson.M{
		"providerResponseStatus": models.ResponseOnTheWay,
	})
	if err != nil {
		return nil, err
	}
	svc.Logger.Info("booking confirmed", zap.String("bookingId", booking.ID))
	return booking, nil
}

// CompleteBooking moves a confirmed booking to Completed. Commission was
// already recorded on acceptance; completion only finalizes the booking.
func (svc *DefaultLifecycleService) CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := svc.transition(ctx, bookingID, models.StatusCompleted, bson.M{
		"completedAt": svc.now(),
	})
	if err != nil {
		return nil, err
	}
	svc.Logger.Info("booking completed", zap.String("bookingId", booking.ID))
	return booking, nil
}

// CancelBooking moves a non-terminal booking to Cancelled.
func (svc *DefaultLifecycleService) CancelBooking(ctx context.Context, bookingID, reason string) (*models.Booking, error) {
	if reason == "" {
		reason = "No reason provided"
	}
	booking, err := svc.transition(ctx, bookingID, models.StatusCancelled, bson.M{
		"cancelledAt":        svc.now(),
		"cancellationReason": reason,
	})
	if err != nil {
		return nil, err
	}
	svc.Logger.Info("booking cancelled",
		zap.String("bookingId", booking.ID), zap.String("reason", reason))
	return booking, nil
}

// DeclineBooking is a provider-initiated cancel; it additionally marks the
// provider response as Declined.
func (svc *DefaultLifecycleService) DeclineBooking(ctx context.Context, bookingID, reason string) (*models.Booking, error) {
	if reason == "" {
		reason = "Declined by provider"
	}
	booking, err := svc.transition(ctx, bookingID, models.StatusCancelled, bson.M{
		"cancelledAt":            svc.now(),
		"cancellationReason":     reason,
		"providerResponseStatus": models.ResponseDeclined,
	})
	if err != nil {
		return nil, err
	}
	svc.Logger.Info("booking declined",
		zap.String("bookingId", booking.ID), zap.String("reason", reason))
	return booking, nil
}

// ExpireBooking moves a pending booking to Expired after its response
// window lapsed without a provider response.
func (svc *DefaultLifecycleService) ExpireBooking(ctx context.Context, bookingID, reason string) (*models.Booking, error) {
	if reason == "" {
		reason = "Response timeout"
	}
	booking, err := svc.transition(ctx, bookingID, models.StatusExpired, bson.M{
		"expirationReason":       reason,
		"providerResponseStatus": models.ResponseTimedOut,
	})
	if err != nil {
		return nil, err
	}
	svc.Logger.Info("booking expired",
		zap.String("bookingId", booking.ID), zap.String("reason", reason))
	return booking, nil
}
