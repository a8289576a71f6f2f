package httpgin

import (
	"time"

	"staybook/internal/domain"
)

type CreatePropertyRequest struct {
	Title             string  `json:"title" binding:"required"`
	Description       string  `json:"description"`
	MaxGuests         int     `json:"max_guests"`
	BasePricePerNight float64 `json:"base_price_per_night"`
}

type PropertyResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	MaxGuests         int     `json:"max_guests"`
	BasePricePerNight float64 `json:"base_price_per_night"`
}

type CreateUserRequest struct {
	Name string `json:"name" binding:"required"`
}

type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateBookingRequest deliberately leaves guest_count unconstrained at the
// binding level: the domain owns the guest-count rules and their error
// messages.
type CreateBookingRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
	UserID     string `json:"user_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	GuestCount int    `json:"guest_count"`
}

type BookingResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	UserID     string    `json:"user_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	GuestCount int       `json:"guest_count"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:                p.ID(),
		Title:             p.Title(),
		Description:       p.Description(),
		MaxGuests:         p.MaxGuests(),
		BasePricePerNight: p.BasePricePerNight(),
	}
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID(), Name: u.Name()}
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID(),
		PropertyID: b.Property().ID(),
		UserID:     b.User().ID(),
		StartDate:  b.DateRange().Start(),
		EndDate:    b.DateRange().End(),
		GuestCount: b.GuestCount(),
		Status:     string(b.Status()),
		TotalPrice: b.TotalPrice(),
	}
}

func toBookingResponses(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
