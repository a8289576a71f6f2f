package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"staybook/internal/domain"
	"staybook/internal/repository"
)

type BookingRepo struct {
	db DB
}

// Save upserts the booking row. Only status and total price ever change
// after creation, but the full row is written for simplicity.
func (r *BookingRepo) Save(ctx context.Context, booking *domain.Booking) error {
	const op = "postgres.BookingRepo.Save"

	_, err := r.db.Exec(ctx,
		`INSERT INTO bookings(id, property_id, guest_id, start_date, end_date,
		                      guest_count, total_price, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		 ON CONFLICT (id) DO UPDATE
		 SET total_price = EXCLUDED.total_price,
		     status = EXCLUDED.status`,
		booking.ID(),
		booking.Property().ID(),
		booking.User().ID(),
		booking.DateRange().Start(),
		booking.DateRange().End(),
		booking.GuestCount(),
		booking.TotalPrice(),
		string(booking.Status()),
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// ByID loads a booking through its property aggregate, so the returned
// booking is the same instance the property holds in its list.
//
// Returns:
//   - error: repository.ErrNotFound if the booking does not exist.
func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.ByID"

	var propertyID string
	err := r.db.QueryRow(ctx,
		`SELECT property_id FROM bookings WHERE id = $1`,
		id,
	).Scan(&propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	property, err := loadPropertyWithBookings(ctx, r.db, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	for _, b := range property.Bookings() {
		if b.ID() == id {
			return b, nil
		}
	}

	return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
}

// ListByProperty returns the bookings registered against a property in
// insertion order.
//
// Returns:
//   - error: repository.ErrNotFound if the property does not exist.
func (r *BookingRepo) ListByProperty(ctx context.Context, propertyID string) ([]*domain.Booking, error) {
	const op = "postgres.BookingRepo.ListByProperty"

	property, err := loadPropertyWithBookings(ctx, r.db, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return property.Bookings(), nil
}

func scanBooking(rows pgx.Rows, property *domain.Property) (*domain.Booking, error) {
	var (
		id         string
		guestID    string
		guestName  string
		startDate  time.Time
		endDate    time.Time
		guestCount int
		totalPrice float64
		status     string
	)

	if err := rows.Scan(
		&id, &guestID, &guestName, &startDate, &endDate,
		&guestCount, &totalPrice, &status,
	); err != nil {
		return nil, err
	}

	guest, err := domain.NewUser(guestID, guestName)
	if err != nil {
		return nil, err
	}

	dateRange, err := domain.NewDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateBooking(
		id, property, guest, dateRange,
		guestCount, domain.BookingStatus(status), totalPrice,
	), nil
}
