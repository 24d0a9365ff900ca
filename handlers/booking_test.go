package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Philip2024394/website-massage--sub045/models"
	"github.com/Philip2024394/website-massage--sub045/services/booking"

	"github.com/gin-gonic/gin"
)

type stubLifecycle struct {
	booking.LifecycleService
	booking *models.Booking
}

func (s *stubLifecycle) GetBooking(_ context.Context, _ string) (*models.Booking, error) {
	return s.booking, nil
}

func (s *stubLifecycle) AcceptBooking(_ context.Context, _ string) (*models.Booking, error) {
	return s.booking, nil
}

func TestGetBookingHandlerIncludesPhase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewBookingHandler(&stubLifecycle{booking: &models.Booking{
		ID:     "bk-1",
		Status: models.StatusConfirmed,
	}})
	router.GET("/api/bookings/:id", h.GetBookingHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/bk-1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if payload["status"] != string(models.StatusConfirmed) {
		t.Errorf("status = %v, want Confirmed", payload["status"])
	}
	if payload["phase"] != string(models.PhaseActive) {
		t.Errorf("phase = %v, want %s", payload["phase"], models.PhaseActive)
	}
}

func TestTransitionResponseIncludesPhase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewBookingHandler(&stubLifecycle{booking: &models.Booking{
		ID:     "bk-1",
		Status: models.StatusAccepted,
	}})
	router.POST("/api/bookings/:id/accept", h.AcceptBookingHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/bk-1/accept", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if payload["phase"] != string(models.PhaseActive) {
		t.Errorf("phase = %v, want %s", payload["phase"], models.PhaseActive)
	}
}
