package booking

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Philip2024394/website-massage--sub045/models"

	"go.mongodb.org/mongo-driver/bson"
)

func validCandidate() *models.Booking {
	return &models.Booking{
		ID:             "bk-1",
		ProviderID:     "prov-1",
		ProviderType:   models.ProviderTherapist,
		ProviderName:   "Ayu",
		Service:        90,
		Status:         models.StatusPending,
		ResponseStatus: models.ResponseAwaiting,
		CreatedAt:      time.Now(),
	}
}

func TestValidateBookingSchemaPasses(t *testing.T) {
	b, err := ValidateBookingSchema(validCandidate())
	if err != nil {
		t.Fatalf("ValidateBookingSchema: %v", err)
	}
	if b == nil {
		t.Fatal("expected the validated booking back")
	}
}

func TestValidateBookingSchemaAggregatesAllFailures(t *testing.T) {
	candidate := &models.Booking{
		ProviderType: "robot",
		Service:      45,
		Status:       "Floating",
	}
	_, err := ValidateBookingSchema(candidate)
	if err == nil {
		t.Fatal("expected schema error")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error type = %T, want *SchemaError", err)
	}

	failed := map[string]bool{}
	for _, f := range schemaErr.Failures {
		failed[f.Field] = true
	}
	for _, field := range []string{"bookingId", "providerId", "providerType", "providerName", "status", "providerResponseStatus", "service", "createdAt"} {
		if !failed[field] {
			t.Errorf("expected %s in aggregated failures, got %v", field, schemaErr.Failures)
		}
	}

	// The message must name every failing field, not just the first.
	msg := err.Error()
	if !strings.Contains(msg, "providerId") || !strings.Contains(msg, "service") {
		t.Errorf("aggregated message missing fields: %s", msg)
	}
}

func TestValidateBookingSchemaStatusResponseConsistency(t *testing.T) {
	candidate := validCandidate()
	candidate.Status = models.StatusCompleted
	candidate.ResponseStatus = models.ResponseDeclined

	_, err := ValidateBookingSchema(candidate)
	if err == nil {
		t.Fatal("a completed booking with a Declined provider response must fail validation")
	}

	candidate.ResponseStatus = models.ResponseOnTheWay
	if _, err := ValidateBookingSchema(candidate); err != nil {
		t.Fatalf("Completed + OnTheWay should validate: %v", err)
	}
}

func TestValidateBookingSchemaRejectsEmptyResponseStatus(t *testing.T) {
	candidate := validCandidate()
	candidate.ResponseStatus = ""

	_, err := ValidateBookingSchema(candidate)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("ValidateBookingSchema = %v, want *SchemaError", err)
	}
	if len(schemaErr.Failures) != 1 || schemaErr.Failures[0].Field != "providerResponseStatus" {
		t.Fatalf("failures = %v, want exactly providerResponseStatus", schemaErr.Failures)
	}
}

func TestSchemaValidationReportListsEveryCheck(t *testing.T) {
	report := SchemaValidationReport(validCandidate())
	if len(report) < 7 {
		t.Fatalf("report has %d checks, want at least 7", len(report))
	}
	for _, c := range report {
		if !c.OK {
			t.Errorf("check %s failed on a valid candidate: %s", c.Field, c.Detail)
		}
	}
}

func TestMapLegacyBookingFields(t *testing.T) {
	legacy := bson.M{
		"bookingId":     "bk-1",
		"therapistId":   "prov-9",
		"therapistType": "therapist",
		"therapistName": "Sari",
		"status":        "Pending",
	}
	mapped := MapLegacyBookingFields(legacy)

	if mapped["providerId"] != "prov-9" {
		t.Errorf("providerId = %v, want prov-9", mapped["providerId"])
	}
	if mapped["providerName"] != "Sari" {
		t.Errorf("providerName = %v, want Sari", mapped["providerName"])
	}
	// Legacy keys stay for the phased migration.
	if mapped["therapistId"] != "prov-9" {
		t.Errorf("legacy therapistId dropped: %v", mapped)
	}
}

func TestMapLegacyBookingFieldsPrefersCanonical(t *testing.T) {
	doc := bson.M{
		"providerId":  "prov-new",
		"therapistId": "prov-old",
	}
	mapped := MapLegacyBookingFields(doc)
	if mapped["providerId"] != "prov-new" {
		t.Errorf("canonical providerId overwritten: %v", mapped["providerId"])
	}
}

func TestMapLegacyBookingFieldsInfersTherapistType(t *testing.T) {
	mapped := MapLegacyBookingFields(bson.M{"therapistId": "prov-1"})
	if mapped["providerType"] != string(models.ProviderTherapist) {
		t.Errorf("providerType = %v, want therapist", mapped["providerType"])
	}
}
