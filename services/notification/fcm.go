package notification

import (
	"context"
	"fmt"

	"github.com/Philip2024394/website-massage--sub045/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMBroadcaster sends booking request pushes through Firebase Cloud
// Messaging.
type FCMBroadcaster struct {
	Client *messaging.Client
	Logger *zap.Logger
}

// NewFCMBroadcaster builds an FCM-backed Broadcaster.
func NewFCMBroadcaster(client *messaging.Client, logger *zap.Logger) (*FCMBroadcaster, error) {
	if client == nil {
		return nil, fmt.Errorf("fcm broadcaster: messaging client is nil")
	}
	return &FCMBroadcaster{Client: client, Logger: logger}, nil
}

// BroadcastBookingRequest pushes the booking request to every provider in
// the pool. Providers without a registered token and individual send
// failures are logged and skipped; one unreachable device must not starve
// the rest of the pool.
func (b *FCMBroadcaster) BroadcastBookingRequest(ctx context.Context, booking models.Booking, providers []models.Provider) (int, error) {
	notified := 0
	for _, p := range providers {
		if p.FCMToken == "" {
			b.Logger.Debug("provider has no FCM token, skipping",
				zap.String("providerId", p.ID))
			continue
		}

		msg := &messaging.Message{
			Token: p.FCMToken,
			Notification: &messaging.Notification{
				Title: "New booking request",
				Body:  fmt.Sprintf("%d minute %s session available", booking.Service, booking.ProviderType),
			},
			Data: map[string]string{
				"bookingId": booking.ID,
				"service":   fmt.Sprintf("%d", booking.Service),
				"startTime": booking.StartTime,
				"role":      "provider",
			},
		}
		if _, err := b.Client.Send(ctx, msg); err != nil {
			b.Logger.Warn("failed to push booking request",
				zap.String("providerId", p.ID),
				zap.String("bookingId", booking.ID),
				zap.Error(err))
			continue
		}
		notified++
	}
	return notified, nil
}
