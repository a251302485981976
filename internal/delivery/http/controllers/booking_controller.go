package controllers

import (
	"log/slog"
	"net/http"

	"github.com/yousef10-awadh/dev-events/internal/delivery/http/helpers"
	"github.com/yousef10-awadh/dev-events/internal/domain"
)

// CreateBookingRequest is the request body for POST /events/{eventID}/bookings.
type CreateBookingRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (c CreateBookingRequest) Validate() []string {
	var errs []string
	if c.Email == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// BookingSuccessResponse is the success envelope for endpoints returning one booking.
type BookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Book a spot at an event
// @Description Create a booking for the event. The email must be well-formed and the event must exist; a confirmation email is sent on success.
// @Tags bookings
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param booking body CreateBookingRequest true "Booking data"
// @Success 201 {object} controllers.BookingSuccessResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed email or UUID)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (referenced event does not exist)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), eventID, req.Email)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// ListBookings godoc
// @Summary List bookings for an event
// @Tags bookings
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the bookings"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed UUID)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [get]
func (c *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}
	bookings, err := c.Service.ListBookingsByEvent(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}
