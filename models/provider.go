package models

// ProviderAvailability values for the provider availability record.
const (
	AvailabilityAvailable = "Available"
	AvailabilityBusy      = "Busy"
	AvailabilityOffline   = "Offline"
)

// Provider is the availability view of a service provider. The record is
// owned by the provider management flow; this core only reads it and clears
// CurrentBookingID when releasing a provider from an expired booking.
type Provider struct {
	ID               string       `bson:"id" json:"id"`
	Name             string       `bson:"name" json:"name"`
	Type             ProviderType `bson:"type" json:"type"`
	Status           string       `bson:"status" json:"status"`
	CurrentBookingID string       `bson:"currentBookingId,omitempty" json:"currentBookingId,omitempty"`
	FCMToken         string       `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
}
