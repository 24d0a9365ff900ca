package booking

import (
	"fmt"
	"strings"

	"github.com/Philip2024394/website-massage--sub045/models"

	"go.mongodb.org/mongo-driver/bson"
)

// FieldCheck is one schema check result for diagnostic tooling.
type FieldCheck struct {
	Field  string `json:"field"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// SchemaError aggregates every failing field of a booking document. A
// booking that fails any hard check must never be saved; reporting all
// failures at once saves the round trips of fixing them one by one.
type SchemaError struct {
	Failures []FieldCheck
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Detail))
	}
	return "booking schema validation failed: " + strings.Join(parts, "; ")
}

var validResponseStatuses = map[models.ProviderResponseStatus]bool{
	models.ResponseAwaiting:  true,
	models.ResponseConfirmed: true,
	models.ResponseOnTheWay:  true,
	models.ResponseDeclined:  true,
	models.ResponseTimedOut:  true,
}

var validStatuses = map[models.BookingStatus]bool{
	models.StatusPending:    true,
	models.StatusAccepted:   true,
	models.StatusConfirmed:  true,
	models.StatusCompleted:  true,
	models.StatusCancelled:  true,
	models.StatusExpired:    true,
	models.StatusReassigned: true,
}

// SchemaValidationReport runs every schema check against a candidate
// booking and returns the full pass/fail list.
func SchemaValidationReport(candidate *models.Booking) []FieldCheck {
	checks := []FieldCheck{
		check("bookingId", candidate.ID != "", "must be present"),
		check("providerId", candidate.ProviderID != "", "must be present and non-empty"),
		check("providerType",
			candidate.ProviderType == models.ProviderTherapist || candidate.ProviderType == models.ProviderPlace,
			fmt.Sprintf("got %q, want therapist or place", candidate.ProviderType)),
		check("providerName", candidate.ProviderName != "", "must be present"),
		check("status", validStatuses[candidate.Status],
			fmt.Sprintf("got %q, not a lifecycle status", candidate.Status)),
		check("providerResponseStatus", validResponseStatuses[candidate.ResponseStatus],
			fmt.Sprintf("got %q, not a response status", candidate.ResponseStatus)),
		check("service", validServiceDuration(candidate.Service),
			fmt.Sprintf("got %d, want one of 60, 90, 120", candidate.Service)),
		check("createdAt", !candidate.CreatedAt.IsZero(), "must be present"),
	}

	// A joint status/response consistency check: a delivered service implies
	// the provider actually engaged with the booking.
	if candidate.Status == models.StatusCompleted {
		consistent := candidate.ResponseStatus == models.ResponseConfirmed ||
			candidate.ResponseStatus == models.ResponseOnTheWay
		checks = append(checks, check("providerResponseStatus",
			consistent, "completed booking requires a Confirmed or OnTheWay provider response"))
	}
	return checks
}

// ValidateBookingSchema enforces the hard schema requirements on a booking
// document before it may be saved. On any violation it returns a
// SchemaError listing every failing field.
func ValidateBookingSchema(candidate *models.Booking) (*models.Booking, error) {
	var failures []FieldCheck
	for _, c := range SchemaValidationReport(candidate) {
		if !c.OK {
			failures = append(failures, c)
		}
	}
	if len(failures) > 0 {
		return nil, &SchemaError{Failures: failures}
	}
	return candidate, nil
}

func check(field string, ok bool, detail string) FieldCheck {
	c := FieldCheck{Field: field, OK: ok}
	if !ok {
		c.Detail = detail
	}
	return c
}

func validServiceDuration(d int) bool {
	for _, v := range models.ServiceDurations {
		if d == v {
			return true
		}
	}
	return false
}

// MapLegacyBookingFields translates legacy therapist-specific field names
// onto the canonical provider fields of a raw booking document. The legacy
// keys are kept alongside the canonical ones so older dashboards keep
// working during the migration; canonical fields already present win.
func MapLegacyBookingFields(doc bson.M) bson.M {
	mapped := make(bson.M, len(doc)+3)
	for k, v := range doc {
		mapped[k] = v
	}

	legacyToCanonical := map[string]string{
		"therapistId":   "providerId",
		"therapistType": "providerType",
		"therapistName": "providerName",
	}
	for legacy, canonical := range legacyToCanonical {
		v, hasLegacy := doc[legacy]
		if !hasLegacy {
			continue
		}
		if existing, ok := mapped[canonical]; ok && existing != nil && existing != "" {
			continue
		}
		mapped[canonical] = v
	}

	// Documents that predate the provider split only ever named therapists.
	if _, ok := mapped["providerType"]; !ok {
		if _, hadTherapist := doc["therapistId"]; hadTherapist {
			mapped["providerType"] = string(models.ProviderTherapist)
		}
	}
	return mapped
}
