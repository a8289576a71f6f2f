// Package repository defines the persistence boundary of the booking
// domain. Implementations translate their storage errors to the sentinel
// errors in this package at the boundary.
package repository

import (
	"context"

	"staybook/internal/domain"
)

// Properties persists property aggregates. ByID loads the property together
// with its registered bookings so availability checks see every confirmed
// reservation.
type Properties interface {
	Save(ctx context.Context, property *domain.Property) error
	ByID(ctx context.Context, id string) (*domain.Property, error)
}

// Bookings persists booking aggregates. ByID loads the booking with its
// property and guest resolved.
type Bookings interface {
	Save(ctx context.Context, booking *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByProperty(ctx context.Context, propertyID string) ([]*domain.Booking, error)
}

// Users persists guest identities.
type Users interface {
	Save(ctx context.Context, user *domain.User) error
	ByID(ctx context.Context, id string) (*domain.User, error)
}

// Store groups the repositories over a single storage handle.
type Store interface {
	Properties() Properties
	Bookings() Bookings
	Users() Users
}

// AfterCommit is a function that runs after a successful transaction commit.
type AfterCommit func(ctx context.Context)

// UnitOfWork runs a function against a transaction-bound Store. Hooks
// registered through after run only when the transaction commits.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx Store, after func(AfterCommit)) error) error
}
