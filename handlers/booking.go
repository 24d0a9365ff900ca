package handlers

import (
	"errors"
	"net/http"

	bookingRepo "github.com/Philip2024394/website-massage--sub045/database/repository/booking"
	"github.com/Philip2024394/website-massage--sub045/models"
	"github.com/Philip2024394/website-massage--sub045/services/booking"
	"github.com/Philip2024394/website-massage--sub045/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Lifecycle booking.LifecycleService
}

// NewBookingHandler builds a BookingHandler.
func NewBookingHandler(lifecycle booking.LifecycleService) *BookingHandler {
	return &BookingHandler{Lifecycle: lifecycle}
}

// CreateBookingHandler opens a new booking request in Pending state.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Lifecycle.CreateBooking(c.Request.Context(), input)
	if err != nil {
		var schemaErr *booking.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "booking schema validation failed",
				"fields": schemaErr.Failures,
			})
		case errors.Is(err, booking.ErrDuplicateBooking):
			utils.JSONError(c, http.StatusConflict, "duplicate booking", err.Error())
		case errors.Is(err, booking.ErrTooSoon):
			utils.JSONError(c, http.StatusUnprocessableEntity, "booking too soon", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, models.NewBookingView(*created))
}

// GetBookingHandler returns a single booking by id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Lifecycle.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", c.Param("id"))
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.NewBookingView(*b))
}

// GetProviderBookingsHandler lists a provider's bookings, newest first.
func (h *BookingHandler) GetProviderBookingsHandler(c *gin.Context) {
	bookings, err := h.Lifecycle.GetProviderBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch provider bookings", err.Error())
		return
	}
	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, models.NewBookingView(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// AcceptBookingHandler moves a pending booking to Accepted.
func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	h.runTransition(c, func() (*models.Booking, error) {
		return h.Lifecycle.AcceptBooking(c.Request.Context(), c.Param("id"))
	})
}

// ConfirmBookingHandler moves an accepted booking to Confirmed.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	h.runTransition(c, func() (*models.Booking, error) {
		return h.Lifecycle.ConfirmBooking(c.Request.Context(), c.Param("id"))
	})
}

// CompleteBookingHandler moves a confirmed booking to Completed.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	h.runTransition(c, func() (*models.Booking, error) {
		return h.Lifecycle.CompleteBooking(c.Request.Context(), c.Param("id"))
	})
}

type reasonInput struct {
	Reason string `json:"reason"`
}

// CancelBookingHandler moves a non-terminal booking to Cancelled.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var input reasonInput
	_ = c.ShouldBindJSON(&input)
	h.runTransition(c, func() (*models.Booking, error) {
		return h.Lifecycle.CancelBooking(c.Request.Context(), c.Param("id"), input.Reason)
	})
}

// DeclineBookingHandler is the provider-initiated cancel.
func (h *BookingHandler) DeclineBookingHandler(c *gin.Context) {
	var input reasonInput
	_ = c.ShouldBindJSON(&input)
	h.runTransition(c, func() (*models.Booking, error) {
		return h.Lifecycle.DeclineBooking(c.Request.Context(), c.Param("id"), input.Reason)
	})
}

// runTransition maps lifecycle errors onto HTTP statuses.
func (h *BookingHandler) runTransition(c *gin.Context, fn func() (*models.Booking, error)) {
	result, err := fn()
	switch {
	case err == nil:
		c.JSON(http.StatusOK, models.NewBookingView(*result))
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found", c.Param("id"))
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "invalid status transition", err.Error())
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		utils.JSONError(c, http.StatusConflict, "booking changed concurrently", err.Error())
	case errors.Is(err, booking.ErrMissingProvider):
		utils.JSONError(c, http.StatusUnprocessableEntity, "booking has no provider", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "transition failed", err.Error())
	}
}
