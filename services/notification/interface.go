package notification

import (
	"context"

	"github.com/Philip2024394/website-massage--sub045/models"
)

// Broadcaster delivers a booking request to a pool of providers. Delivery
// transport is an external collaborator; implementations report how many
// providers were notified.
type Broadcaster interface {
	BroadcastBookingRequest(ctx context.Context, booking models.Booking, providers []models.Provider) (int, error)
}
