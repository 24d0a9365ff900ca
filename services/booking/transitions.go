package booking

import "github.com/Philip2024394/website-massage--sub045/models"

// validTransitions is the closed set of legal lifecycle edges.
//
//	Pending   -> Accepted | Cancelled | Expired
//	Accepted  -> Confirmed | Cancelled
//	Confirmed -> Completed | Cancelled
//	Completed, Cancelled, Expired are terminal.
var validTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusAccepted, models.StatusCancelled, models.StatusExpired},
	models.StatusAccepted:  {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
	models.StatusExpired:   {},
}

// IsValidTransition reports whether a booking may move from one lifecycle
// status to another. Pure and total: any pair outside the table, including
// same-state moves and multi-step skips, is false. A false result is a
// caller error, not a retryable failure.
func IsValidTransition(from, to models.BookingStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
