package models

import "time"

// BookingStatus is the fine-grained lifecycle status persisted on a booking.
// Status only moves along the edges enforced by the booking service; nothing
// else may write the status field.
type BookingStatus string

const (
	StatusPending    BookingStatus = "Pending"
	StatusAccepted   BookingStatus = "Accepted"
	StatusConfirmed  BookingStatus = "Confirmed"
	StatusCompleted  BookingStatus = "Completed"
	StatusCancelled  BookingStatus = "Cancelled"
	StatusExpired    BookingStatus = "Expired"
	StatusReassigned BookingStatus = "Reassigned"
)

// IsTerminal reports whether s is a terminal lifecycle status.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// ProviderResponseStatus tracks the assigned provider's acknowledgement,
// independent of the booking lifecycle status.
type ProviderResponseStatus string

const (
	ResponseAwaiting  ProviderResponseStatus = "AwaitingResponse"
	ResponseConfirmed ProviderResponseStatus = "Confirmed"
	ResponseOnTheWay  ProviderResponseStatus = "OnTheWay"
	ResponseDeclined  ProviderResponseStatus = "Declined"
	ResponseTimedOut  ProviderResponseStatus = "TimedOut"
)

// ProviderType distinguishes individual therapists from businesses.
type ProviderType string

const (
	ProviderTherapist ProviderType = "therapist"
	ProviderPlace     ProviderType = "place"
)

// ServiceDurations are the bookable session lengths in minutes.
var ServiceDurations = []int{60, 90, 120}

// Booking represents one customer-to-provider service request.
type Booking struct {
	ID                 string                 `bson:"id" json:"id"`
	ProviderID         string                 `bson:"providerId" json:"providerId"`
	ProviderType       ProviderType           `bson:"providerType" json:"providerType"`
	ProviderName       string                 `bson:"providerName" json:"providerName"`
	UserID             string                 `bson:"userId,omitempty" json:"userId,omitempty"`
	UserName           string                 `bson:"userName,omitempty" json:"userName,omitempty"`
	Service            int                    `bson:"service" json:"service"` // duration in minutes: 60, 90 or 120
	StartTime          string                 `bson:"startTime,omitempty" json:"startTime,omitempty"`
	TotalCost          int64                  `bson:"totalCost" json:"totalCost"` // smallest currency unit
	PaymentMethod      string                 `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	Status             BookingStatus          `bson:"status" json:"status"`
	ResponseStatus     ProviderResponseStatus `bson:"providerResponseStatus" json:"providerResponseStatus"`
	CreatedAt          time.Time              `bson:"createdAt" json:"createdAt"`
	ConfirmedAt        *time.Time             `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	CompletedAt        *time.Time             `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CancelledAt        *time.Time             `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	ResponseDeadline   *time.Time             `bson:"responseDeadline,omitempty" json:"responseDeadline,omitempty"`
	CancellationReason string                 `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	ExpirationReason   string                 `bson:"expirationReason,omitempty" json:"expirationReason,omitempty"`

	// Rebroadcast metadata, written by the expiration sweeper.
	Broadcast      bool       `bson:"broadcast,omitempty" json:"broadcast,omitempty"`
	BroadcastAt    *time.Time `bson:"broadcastAt,omitempty" json:"broadcastAt,omitempty"`
	BroadcastCount int        `bson:"broadcastCount,omitempty" json:"broadcastCount"`
}
