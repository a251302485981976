package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yousef10-awadh/dev-events/internal/domain"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. emailService may be nil, in
// which case no confirmation emails are sent.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// CreateBooking validates the email, persists the booking (the repository
// checks the referenced event exists in the same transaction as the
// insert), and sends a confirmation email. The email is best-effort: a
// send failure is logged and the booking stands.
func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := domain.NewBooking(eventID, email, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if s.emailService != nil {
		s.sendConfirmation(ctx, booking)
	}
	return booking, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		log.Printf("[BOOKING] event lookup for confirmation email failed: %v", err)
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventDate:  event.Date,
		EventTime:  event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		log.Printf("[BOOKING] confirmation email to %s failed: %v", booking.Email, err)
	}
}

func (s *bookingService) ListBookingsByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Ensure the event exists so a missing event reads as 404 rather than
	// an empty list.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}
