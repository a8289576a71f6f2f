package domain

import (
	"errors"
	"math"
	"time"

	"staybook/internal/domain/refund"
)

var (
	ErrInvalidGuestCount   = errors.New("guest count must be greater than zero")
	ErrPropertyUnavailable = errors.New("property is not available for the selected date range")
	ErrAlreadyCancelled    = errors.New("booking is already cancelled")
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	// StatusCompleted is a terminal state assigned by back-office tooling
	// after checkout; no transition here produces it.
	StatusCompleted BookingStatus = "completed"
)

// Booking is a reservation of a property by a user for a date range. Once
// confirmed, the stored total price only ever shrinks: cancellation replaces
// it with the retained amount.
type Booking struct {
	id         string
	property   *Property
	user       *User
	dateRange  DateRange
	guestCount int
	status     BookingStatus
	totalPrice float64
}

// NewBooking validates the reservation against the property and prices it.
// The returned booking is confirmed but not yet registered: the caller must
// add it to the property with AddBooking for it to count toward
// availability. Checks run in a fixed order so error precedence is stable:
// guest count, capacity, availability.
//
// Returns:
//   - domain.ErrInvalidGuestCount if guestCount is not positive.
//   - *domain.GuestCountExceededError if guestCount is above property capacity.
//   - domain.ErrPropertyUnavailable if the range conflicts with a confirmed booking.
func NewBooking(id string, property *Property, user *User, dateRange DateRange, guestCount int) (*Booking, error) {
	if guestCount <= 0 {
		return nil, ErrInvalidGuestCount
	}

	if err := property.ValidateGuestCount(guestCount); err != nil {
		return nil, err
	}

	if !property.IsAvailable(dateRange) {
		return nil, ErrPropertyUnavailable
	}

	return &Booking{
		id:         id,
		property:   property,
		user:       user,
		dateRange:  dateRange,
		guestCount: guestCount,
		status:     StatusConfirmed,
		totalPrice: property.CalculateTotalPrice(dateRange),
	}, nil
}

// RehydrateBooking rebuilds a booking from persisted fields, trusting them
// as already validated. Status and total price are taken as stored rather
// than re-derived, since cancellations and historical discounts make them
// diverge from a fresh computation.
func RehydrateBooking(
	id string,
	property *Property,
	user *User,
	dateRange DateRange,
	guestCount int,
	status BookingStatus,
	totalPrice float64,
) *Booking {
	return &Booking{
		id:         id,
		property:   property,
		user:       user,
		dateRange:  dateRange,
		guestCount: guestCount,
		status:     status,
		totalPrice: totalPrice,
	}
}

// Cancel moves the booking to cancelled and replaces the total price with
// the amount retained under the refund rule for the elapsed time. Days until
// check-in round up and may be negative when now is past check-in. The
// property's booking list is untouched.
//
// Returns:
//   - domain.ErrAlreadyCancelled if the booking was cancelled before.
//   - refund.ErrInvalidDaysDiff if the days difference is not a number.
func (b *Booking) Cancel(now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	const nightHours = 24
	daysDiff := math.Ceil(b.dateRange.Start().Sub(now).Hours() / nightHours)

	rule, err := refund.SelectRule(daysDiff)
	if err != nil {
		return err
	}

	b.totalPrice = rule.CalculateRefund(b.totalPrice)
	b.status = StatusCancelled

	return nil
}

func (b *Booking) ID() string { return b.id }

func (b *Booking) Property() *Property { return b.property }

func (b *Booking) User() *User { return b.user }

func (b *Booking) DateRange() DateRange { return b.dateRange }

func (b *Booking) GuestCount() int { return b.guestCount }

func (b *Booking) Status() BookingStatus { return b.status }

// TotalPrice is the price of the stay; after cancellation it holds the
// retained amount, not the refunded one.
func (b *Booking) TotalPrice() float64 { return b.totalPrice }
