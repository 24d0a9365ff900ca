package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	commissionRepo "github.com/Philip2024394/website-massage--sub045/database/repository/commission"
	"github.com/Philip2024394/website-massage--sub045/models"

	"go.uber.org/zap"
)

// AdminCommissionRate is the platform's share of every accepted booking.
const AdminCommissionRate = 0.30

// CommissionSplit is the platform/provider revenue split for one booking.
type CommissionSplit struct {
	AdminCommission int64 `json:"adminCommission"`
	ProviderPayout  int64 `json:"providerPayout"`
}

// CalculateCommission computes the revenue split for a booking total given
// in the smallest currency unit. The payout is derived by subtraction so
// that AdminCommission + ProviderPayout == totalPrice holds exactly.
func CalculateCommission(totalPrice int64) CommissionSplit {
	adminCommission := int64(math.Round(float64(totalPrice) * AdminCommissionRate))
	return CommissionSplit{
		AdminCommission: adminCommission,
		ProviderPayout:  totalPrice - adminCommission,
	}
}

// RecordAcceptedCommission persists the commission record for a booking that
// just moved to Accepted. It is the only writer of commission records. A
// record that already exists for the booking is left untouched, so re-entry
// after a partial failure cannot double-charge a provider.
func (svc *DefaultLifecycleService) RecordAcceptedCommission(ctx context.Context, booking *models.Booking) error {
	existing, err := svc.Commissions.FindByBookingID(ctx, booking.ID)
	if err != nil && !errors.Is(err, commissionRepo.ErrCommissionNotFound) {
		return fmt.Errorf("failed to check existing commission for booking %s: %w", booking.ID, err)
	}
	if existing != nil {
		svc.Logger.Info("commission already recorded, skipping duplicate",
			zap.String("bookingId", booking.ID),
			zap.String("commissionId", existing.ID))
		return nil
	}

	split := CalculateCommission(booking.TotalCost)
	record := &models.CommissionRecord{
		BookingID:       booking.ID,
		ProviderID:      booking.ProviderID,
		ProviderName:    booking.ProviderName,
		ProviderType:    booking.ProviderType,
		BookingAmount:   booking.TotalCost,
		AdminCommission: split.AdminCommission,
		ProviderPayout:  split.ProviderPayout,
		CommissionRate:  AdminCommissionRate,
		Status:          models.CommissionPending,
		CreatedAt:       svc.now(),
	}
	if err := svc.Commissions.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to record commission for booking %s: %w", booking.ID, err)
	}

	svc.Logger.Info("commission recorded on acceptance",
		zap.String("bookingId", booking.ID),
		zap.Int64("adminCommission", split.AdminCommission),
		zap.Int64("providerPayout", split.ProviderPayout))
	return nil
}

// CommissionSummary aggregates commission totals over an optional creation
// range, for the admin dashboard.
func (svc *DefaultLifecycleService) CommissionSummary(ctx context.Context, start, end *time.Time) (models.CommissionSummary, error) {
	return svc.Commissions.SummarizeRange(ctx, start, end)
}
