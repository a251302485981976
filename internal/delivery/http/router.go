package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/yousef10-awadh/dev-events/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, bookingController *controllers.BookingController) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("GET /events/slug/{slug}", eventController.GetEventBySlug)
	mux.HandleFunc("PATCH /events/{eventID}", eventController.UpdateEvent)
	mux.HandleFunc("DELETE /events/{eventID}", eventController.DeleteEvent)

	// Bookings
	mux.HandleFunc("POST /events/{eventID}/bookings", bookingController.CreateBooking)
	mux.HandleFunc("GET /events/{eventID}/bookings", bookingController.ListBookings)

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
