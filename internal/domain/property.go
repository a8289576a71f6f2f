package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrInvalidMaxGuests = errors.New("max guests must be greater than zero")
	ErrInvalidBasePrice = errors.New("invalid base price for property")
)

// GuestCountExceededError is returned when a requested guest count is above
// the property capacity. It carries the configured maximum so callers can
// surface it.
type GuestCountExceededError struct {
	MaxGuests int
}

func (e *GuestCountExceededError) Error() string {
	return fmt.Sprintf("guest count exceeds maximum allowed: max guests: %d", e.MaxGuests)
}

// Property is a bookable unit. It owns the pricing rule and capacity limit
// and accumulates references to the bookings made against it; booking
// lifecycles are owned by the bookings themselves.
type Property struct {
	id                string
	title             string
	description       string
	maxGuests         int
	basePricePerNight float64
	bookings          []*Booking
}

// NewProperty validates the descriptive attributes and capacity.
//
// Returns:
//   - domain.ErrEmptyTitle if title is empty.
//   - domain.ErrInvalidMaxGuests if maxGuests is not positive.
//   - domain.ErrInvalidBasePrice if basePricePerNight is NaN or not positive.
func NewProperty(id, title, description string, maxGuests int, basePricePerNight float64) (*Property, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}

	if maxGuests <= 0 {
		return nil, ErrInvalidMaxGuests
	}

	if math.IsNaN(basePricePerNight) || basePricePerNight <= 0 {
		return nil, ErrInvalidBasePrice
	}

	return &Property{
		id:                id,
		title:             title,
		description:       description,
		maxGuests:         maxGuests,
		basePricePerNight: basePricePerNight,
	}, nil
}

func (p *Property) ID() string { return p.id }

func (p *Property) Title() string { return p.title }

func (p *Property) Description() string { return p.description }

func (p *Property) MaxGuests() int { return p.maxGuests }

func (p *Property) BasePricePerNight() float64 { return p.basePricePerNight }

// ValidateGuestCount fails with a GuestCountExceededError when guestCount is
// above the configured capacity.
func (p *Property) ValidateGuestCount(guestCount int) error {
	if guestCount > p.maxGuests {
		return &GuestCountExceededError{MaxGuests: p.maxGuests}
	}

	return nil
}

// CalculateTotalPrice prices a stay: nights times the base rate, with a 10%
// discount for stays of a week or longer.
func (p *Property) CalculateTotalPrice(dateRange DateRange) float64 {
	nights := dateRange.TotalNights()
	totalPrice := float64(nights) * p.basePricePerNight

	if nights >= 7 {
		return totalPrice * 0.9
	}

	return totalPrice
}

// IsAvailable reports whether dateRange is free of conflicts. Only confirmed
// bookings block availability; cancelled and completed ones never do.
func (p *Property) IsAvailable(dateRange DateRange) bool {
	for _, b := range p.bookings {
		if b.Status() == StatusConfirmed && b.DateRange().Overlaps(dateRange) {
			return false
		}
	}

	return true
}

// AddBooking registers a booking with the property. The list is append-only;
// bookings are never removed, a cancelled booking simply stops counting
// toward availability.
func (p *Property) AddBooking(booking *Booking) {
	p.bookings = append(p.bookings, booking)
}

// Bookings returns a snapshot of the registered bookings in insertion order.
// Mutating the returned slice does not affect the property.
func (p *Property) Bookings() []*Booking {
	out := make([]*Booking, len(p.bookings))
	copy(out, p.bookings)
	return out
}
