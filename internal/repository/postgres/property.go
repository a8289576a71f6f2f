package postgres

import (
	"context"
	"fmt"

	"staybook/internal/domain"
)

type PropertyRepo struct {
	db DB
}

// Save upserts the property row. Bookings are persisted separately through
// the booking repository.
func (r *PropertyRepo) Save(ctx context.Context, property *domain.Property) error {
	const op = "postgres.PropertyRepo.Save"

	_, err := r.db.Exec(ctx,
		`INSERT INTO properties(id, title, description, max_guests, base_price_per_night)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET title = EXCLUDED.title,
		     description = EXCLUDED.description,
		     max_guests = EXCLUDED.max_guests,
		     base_price_per_night = EXCLUDED.base_price_per_night`,
		property.ID(),
		property.Title(),
		property.Description(),
		property.MaxGuests(),
		property.BasePricePerNight(),
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// ByID loads the property together with every booking registered against it,
// each with its guest resolved, so the aggregate can answer availability.
//
// Returns:
//   - error: repository.ErrNotFound if the property does not exist.
func (r *PropertyRepo) ByID(ctx context.Context, id string) (*domain.Property, error) {
	const op = "postgres.PropertyRepo.ByID"

	property, err := loadPropertyWithBookings(ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return property, nil
}

func loadPropertyWithBookings(ctx context.Context, db DB, id string) (*domain.Property, error) {
	var (
		title       string
		description string
		maxGuests   int
		basePrice   float64
	)

	err := db.QueryRow(ctx,
		`SELECT title, description, max_guests, base_price_per_night
		 FROM properties
		 WHERE id = $1`,
		id,
	).Scan(&title, &description, &maxGuests, &basePrice)
	if err != nil {
		return nil, err
	}

	property, err := domain.NewProperty(id, title, description, maxGuests, basePrice)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx,
		`SELECT b.id, b.guest_id, u.name, b.start_date, b.end_date,
		        b.guest_count, b.total_price, b.status
		 FROM bookings b
		 JOIN users u ON u.id = b.guest_id
		 WHERE b.property_id = $1
		 ORDER BY b.created_at`,
		id,
	)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		booking, err := scanBooking(rows, property)
		if err != nil {
			return nil, err
		}

		property.AddBooking(booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return property, nil
}
