package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventbooking/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

// Reserve atomically checks remaining capacity and inserts a booking.
//
// The event row is locked with SELECT ... FOR UPDATE for the duration of
// the transaction, so concurrent reservations against the same event are
// serialized at the store: no two of them can both read a booked total that
// excludes the other's insert. Reservations against different events lock
// different rows and proceed independently.
//
// A naive read-then-insert without the lock would let two transactions read
// the same booked total before either commits and overbook the event.
func (r *bookingRepository) Reserve(ctx context.Context, eventID, userID int64, seats int) (*domain.Booking, error) {
	if seats <= 0 {
		return nil, domain.ErrInvalidSeats
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, classifyTxError(ctx, fmt.Errorf("begin reserve tx: %w", err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var totalCapacity int
	err = tx.QueryRowContext(ctx,
		`SELECT total_capacity FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&totalCapacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, classifyTxError(ctx, fmt.Errorf("lock event row: %w", err))
	}

	// Live aggregate, read under the event row lock. Committed bookings are
	// immutable, so the sum is exact as of this transaction.
	var booked int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(seats), 0) FROM bookings WHERE event_id = $1`,
		eventID,
	).Scan(&booked)
	if err != nil {
		return nil, classifyTxError(ctx, fmt.Errorf("sum booked seats: %w", err))
	}

	remaining := totalCapacity - booked
	if seats > remaining {
		// Rejection mutates nothing; the deferred rollback releases the lock.
		err = &domain.CapacityError{EventID: eventID, Requested: seats, Remaining: remaining}
		return nil, err
	}

	b := &domain.Booking{
		EventID:        eventID,
		UserID:         userID,
		Seats:          seats,
		RemainingAfter: remaining - seats,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO bookings (event_id, user_id, seats, remaining_after, committed_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING id, committed_at`,
		b.EventID, b.UserID, b.Seats, b.RemainingAfter,
	).Scan(&b.ID, &b.CommittedAt)
	if err != nil {
		return nil, classifyTxError(ctx, fmt.Errorf("insert booking: %w", err))
	}

	if err = tx.Commit(); err != nil {
		return nil, classifyTxError(ctx, fmt.Errorf("commit reserve tx: %w", err))
	}
	return b, nil
}

// classifyTxError maps contention and timeout failures to domain.ErrTryAgain.
// The transaction has rolled back in all of these cases, so a retry with
// identical input is safe.
func classifyTxError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", domain.ErrTryAgain, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "55P03": // serialization failure, deadlock, lock timeout
			return fmt.Errorf("%w: %v", domain.ErrTryAgain, err)
		}
	}
	return err
}

func (r *bookingRepository) CurrentBooked(ctx context.Context, eventID int64) (int, error) {
	var booked int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(seats), 0) FROM bookings WHERE event_id = $1`,
		eventID,
	).Scan(&booked)
	if err != nil {
		return 0, err
	}
	return booked, nil
}

func (r *bookingRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.BookingWithEvent, error) {
	query := `
		SELECT b.id, b.event_id, b.user_id, b.seats, b.remaining_after, b.committed_at,
		       e.id, e.name, e.venue, e.date, e.total_capacity, e.created_at
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY b.committed_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*domain.BookingWithEvent, 0)
	for rows.Next() {
		b := &domain.Booking{}
		e := &domain.Event{}
		if err := rows.Scan(
			&b.ID, &b.EventID, &b.UserID, &b.Seats, &b.RemainingAfter, &b.CommittedAt,
			&e.ID, &e.Name, &e.Venue, &e.Date, &e.TotalCapacity, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, &domain.BookingWithEvent{Booking: b, Event: e})
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListAll(ctx context.Context, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, user_id, seats, remaining_after, committed_at
		FROM bookings
		ORDER BY committed_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{}
		if err := rows.Scan(&b.ID, &b.EventID, &b.UserID, &b.Seats, &b.RemainingAfter, &b.CommittedAt); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}
