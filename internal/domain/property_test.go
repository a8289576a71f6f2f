package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func mustDateRange(t *testing.T, startDay, endDay int) DateRange {
	t.Helper()

	r, err := NewDateRange(date(startDay), date(endDay))
	if err != nil {
		t.Fatalf("NewDateRange() unexpected error: %v", err)
	}
	return r
}

func mustProperty(t *testing.T, maxGuests int, basePrice float64) *Property {
	t.Helper()

	p, err := NewProperty("property-1", "Seaside flat", "Two rooms by the shore", maxGuests, basePrice)
	if err != nil {
		t.Fatalf("NewProperty() unexpected error: %v", err)
	}
	return p
}

func mustUser(t *testing.T) *User {
	t.Helper()

	u, err := NewUser("user-1", "Alice")
	if err != nil {
		t.Fatalf("NewUser() unexpected error: %v", err)
	}
	return u
}

func TestNewProperty(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		maxGuests int
		basePrice float64
		wantErr   error
	}{
		{name: "valid property", title: "Seaside flat", maxGuests: 4, basePrice: 100},
		{name: "empty title", title: "", maxGuests: 4, basePrice: 100, wantErr: ErrEmptyTitle},
		{name: "zero max guests", title: "Seaside flat", maxGuests: 0, basePrice: 100, wantErr: ErrInvalidMaxGuests},
		{name: "negative max guests", title: "Seaside flat", maxGuests: -1, basePrice: 100, wantErr: ErrInvalidMaxGuests},
		{name: "zero base price", title: "Seaside flat", maxGuests: 4, basePrice: 0, wantErr: ErrInvalidBasePrice},
		{name: "negative base price", title: "Seaside flat", maxGuests: 4, basePrice: -50, wantErr: ErrInvalidBasePrice},
		{name: "NaN base price", title: "Seaside flat", maxGuests: 4, basePrice: math.NaN(), wantErr: ErrInvalidBasePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProperty("property-1", tt.title, "description", tt.maxGuests, tt.basePrice)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewProperty() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProperty() unexpected error: %v", err)
			}
			if p.Title() != tt.title || p.MaxGuests() != tt.maxGuests || p.BasePricePerNight() != tt.basePrice {
				t.Fatalf("NewProperty() = %q/%d/%v, want %q/%d/%v",
					p.Title(), p.MaxGuests(), p.BasePricePerNight(), tt.title, tt.maxGuests, tt.basePrice)
			}
		})
	}
}

func TestProperty_ValidateGuestCount(t *testing.T) {
	p := mustProperty(t, 4, 100)

	if err := p.ValidateGuestCount(4); err != nil {
		t.Fatalf("ValidateGuestCount(4) unexpected error: %v", err)
	}

	err := p.ValidateGuestCount(5)
	var exceeded *GuestCountExceededError
	if !errors.As(err, &exceeded) {
		t.Fatalf("ValidateGuestCount(5) error = %v, want *GuestCountExceededError", err)
	}
	if exceeded.MaxGuests != 4 {
		t.Fatalf("MaxGuests = %d, want 4", exceeded.MaxGuests)
	}
	if !strings.Contains(err.Error(), "max guests: 4") {
		t.Fatalf("error message %q does not name the capacity", err.Error())
	}
}

func TestProperty_CalculateTotalPrice(t *testing.T) {
	tests := []struct {
		name     string
		startDay int
		endDay   int
		want     float64
	}{
		{
			name:     "short stay at base rate",
			startDay: 1, endDay: 6, // 5 nights
			want: 1000,
		},
		{
			name:     "week-long stay gets 10% off",
			startDay: 1, endDay: 10, // 9 nights
			want: 1620,
		},
		{
			name:     "exactly seven nights gets 10% off",
			startDay: 1, endDay: 8,
			want: 1260,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustProperty(t, 4, 200)
			r := mustDateRange(t, tt.startDay, tt.endDay)

			if got := p.CalculateTotalPrice(r); got != tt.want {
				t.Fatalf("CalculateTotalPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProperty_IsAvailable(t *testing.T) {
	p := mustProperty(t, 4, 100)
	u := mustUser(t)

	booked := mustDateRange(t, 1, 10)
	b, err := NewBooking("booking-1", p, u, booked, 2)
	if err != nil {
		t.Fatalf("NewBooking() unexpected error: %v", err)
	}
	p.AddBooking(b)

	if p.IsAvailable(mustDateRange(t, 5, 15)) {
		t.Fatal("IsAvailable() = true for a range overlapping a confirmed booking")
	}
	if !p.IsAvailable(mustDateRange(t, 10, 15)) {
		t.Fatal("IsAvailable() = false for a back-to-back range")
	}

	if err := b.Cancel(date(1).AddDate(0, -1, 0)); err != nil {
		t.Fatalf("Cancel() unexpected error: %v", err)
	}
	if !p.IsAvailable(mustDateRange(t, 5, 15)) {
		t.Fatal("IsAvailable() = false after the conflicting booking was cancelled")
	}
}

func TestProperty_BookingsSnapshot(t *testing.T) {
	p := mustProperty(t, 4, 100)
	u := mustUser(t)

	b, err := NewBooking("booking-1", p, u, mustDateRange(t, 1, 5), 2)
	if err != nil {
		t.Fatalf("NewBooking() unexpected error: %v", err)
	}
	p.AddBooking(b)

	snapshot := p.Bookings()
	if len(snapshot) != 1 {
		t.Fatalf("Bookings() returned %d bookings, want 1", len(snapshot))
	}

	snapshot[0] = nil
	if got := p.Bookings(); got[0] == nil {
		t.Fatal("mutating the returned slice changed the property's bookings")
	}
}
