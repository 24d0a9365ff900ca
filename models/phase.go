package models

// RequestPhase is the coarse request-flow phase shown to clients while a
// booking request is being placed and broadcast. It is a separate concern
// from BookingStatus: the phase describes where the customer is in the
// request flow, the status describes where the booking is in its acceptance
// lifecycle.
type RequestPhase string

const (
	PhaseIdle          RequestPhase = "idle"
	PhaseRegistering   RequestPhase = "registering"
	PhaseSearching     RequestPhase = "searching"
	PhasePendingAccept RequestPhase = "pending_accept"
	PhaseActive        RequestPhase = "active"
	PhaseCancelled     RequestPhase = "cancelled"
	PhaseCompleted     RequestPhase = "completed"
)

// PhaseForStatus maps a lifecycle status onto the request-flow phase a
// client should display for it. An expired booking goes back to searching
// because the sweeper rebroadcasts it to the provider pool.
func PhaseForStatus(s BookingStatus) RequestPhase {
	switch s {
	case StatusPending:
		return PhasePendingAccept
	case StatusAccepted, StatusConfirmed:
		return PhaseActive
	case StatusCompleted:
		return PhaseCompleted
	case StatusCancelled:
		return PhaseCancelled
	case StatusExpired, StatusReassigned:
		return PhaseSearching
	}
	return PhaseIdle
}

// BookingView is the API shape of a booking: the stored document plus the
// request-flow phase derived from its status.
type BookingView struct {
	Booking
	Phase RequestPhase `json:"phase"`
}

// NewBookingView builds the client-facing view of a booking.
func NewBookingView(b Booking) BookingView {
	return BookingView{Booking: b, Phase: PhaseForStatus(b.Status)}
}

// StatusForPhase maps a request-flow phase back onto the lifecycle status it
// corresponds to. Phases that precede a persisted booking map to Pending.
func StatusForPhase(p RequestPhase) BookingStatus {
	switch p {
	case PhaseActive:
		return StatusConfirmed
	case PhaseCompleted:
		return StatusCompleted
	case PhaseCancelled:
		return StatusCancelled
	}
	return StatusPending
}
