package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventbooking/internal/domain"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. emailService may be nil, in
// which case no confirmation emails are sent.
func NewBookingService(bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// Book reserves seats for the user. The capacity check and the ledger insert
// happen atomically in the repository; this layer validates input, bounds the
// attempt with a timeout, and shapes the outcome. A capacity rejection is a
// legitimate business outcome and is never retried here.
func (s *bookingService) Book(ctx context.Context, userID, eventID int64, seats int) (*domain.BookingConfirmation, error) {
	if seats <= 0 {
		return nil, domain.ErrInvalidSeats
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.bookingRepo.Reserve(ctx, eventID, userID, seats)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrInsufficientCapacity) ||
			errors.Is(err, domain.ErrTryAgain) ||
			errors.Is(err, domain.ErrInvalidSeats) {
			return nil, err
		}
		return nil, fmt.Errorf("reserve seats: %w", err)
	}

	s.sendConfirmation(ctx, booking)

	return &domain.BookingConfirmation{
		BookingID:   booking.ID,
		EventID:     booking.EventID,
		Seats:       booking.Seats,
		Remaining:   booking.RemainingAfter,
		CommittedAt: booking.CommittedAt,
	}, nil
}

// sendConfirmation emails the user about a committed booking. Best effort:
// the booking is already durable, so failures here are only logged.
func (s *bookingService) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		log.Printf("[BOOKING] confirmation email skipped, user lookup failed: %v", err)
		return
	}
	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		log.Printf("[BOOKING] confirmation email skipped, event lookup failed: %v", err)
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:       user.Email,
		Name:        user.Name,
		EventName:   event.Name,
		EventVenue:  event.Venue,
		EventDate:   event.Date,
		Seats:       booking.Seats,
		Remaining:   booking.RemainingAfter,
		CommittedAt: booking.CommittedAt,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		log.Printf("[BOOKING] confirmation email failed: %v", err)
	}
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID int64) ([]*domain.BookingWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	bookings, err := s.bookingRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.BookingWithEvent{}
	}
	return bookings, nil
}

func (s *bookingService) ListAllBookings(ctx context.Context, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	bookings, total, err := s.bookingRepo.ListAll(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list all bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, total, nil
}
