package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"staybook/internal/domain"
	"staybook/internal/messaging"
	redisx "staybook/internal/redis"
	"staybook/internal/repository"
	redisrepo "staybook/internal/repository/redis"
)

type Config struct {
	// Now supplies the clock used for cancellation refund timing.
	Now func() time.Time
	// NewID supplies booking identifiers.
	NewID func() string
}

type Service struct {
	store   repository.Store
	uow     repository.UnitOfWork
	cache   *redisrepo.Cache
	pubsub  *redisx.PropertiesPubSub
	limiter *redisrepo.SlidingWindowLimiter
	events  *messaging.Producer
	now     func() time.Time
	newID   func() string
}

func New(
	store repository.Store,
	uow repository.UnitOfWork,
	cache *redisrepo.Cache,
	pubsub *redisx.PropertiesPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	events *messaging.Producer,
	cfg Config,
) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	return &Service{
		store:   store,
		uow:     uow,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		events:  events,
		now:     cfg.Now,
		newID:   cfg.NewID,
	}
}

type CreateParams struct {
	PropertyID string
	GuestID    string
	StartDate  time.Time
	EndDate    time.Time
	GuestCount int
	RateKey    string
}

// Create reserves a property for a guest. The property is loaded with its
// confirmed bookings, the new booking is validated and priced by the domain,
// registered on the property, and persisted — all inside one transaction, so
// the availability check and the insert cannot interleave with a concurrent
// creation on the same property.
//
// Returns:
//   - error: booking.ErrPropertyNotFound / booking.ErrUserNotFound when a
//     referenced aggregate does not exist.
//   - error: domain validation errors (guest count, capacity, availability,
//     date range) unchanged, for the transport layer to map.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domain.Booking, error) {
	const op = "service.booking.Create"

	if s.limiter != nil && params.RateKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, params.RateKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: rate limited, retry in %s", op, retry)
		}
	}

	dateRange, err := domain.NewDateRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	var booking *domain.Booking

	err = s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Store,
		after func(repository.AfterCommit),
	) error {
		property, err := tx.Properties().ByID(ctx, params.PropertyID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrPropertyNotFound)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		guest, err := tx.Users().ByID(ctx, params.GuestID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrUserNotFound)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		b, err := domain.NewBooking(s.newID(), property, guest, dateRange, params.GuestCount)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		property.AddBooking(b)

		if err := tx.Bookings().Save(ctx, b); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		booking = b

		after(func(ctx context.Context) {
			s.notify(ctx, messaging.TypeBookingCreated, b)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// Cancel cancels a booking using the service clock. The stored total price
// becomes the retained amount under the refund rule for the elapsed time.
//
// Returns:
//   - error: booking.ErrBookingNotFound if the booking does not exist.
//   - error: domain.ErrAlreadyCancelled on repeat cancellation.
func (s *Service) Cancel(ctx context.Context, bookingID string) (*domain.Booking, error) {
	const op = "service.booking.Cancel"

	var booking *domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Store,
		after func(repository.AfterCommit),
	) error {
		b, err := tx.Bookings().ByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrBookingNotFound)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		if err := b.Cancel(s.now()); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := tx.Bookings().Save(ctx, b); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		booking = b

		after(func(ctx context.Context) {
			s.notify(ctx, messaging.TypeBookingCancelled, b)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByID returns a booking with its property and guest resolved.
func (s *Service) GetByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	const op = "service.booking.GetByID"

	b, err := s.store.Bookings().ByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrBookingNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return b, nil
}

// ListByProperty returns every booking registered against a property.
func (s *Service) ListByProperty(ctx context.Context, propertyID string) ([]*domain.Booking, error) {
	const op = "service.booking.ListByProperty"

	bookings, err := s.store.Bookings().ListByProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrPropertyNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return bookings, nil
}

// notify runs after commit: drops cached property views, broadcasts the
// change, and emits the Kafka event. Failures are deliberately ignored; the
// booking is already durable.
func (s *Service) notify(ctx context.Context, eventType string, b *domain.Booking) {
	propertyID := b.Property().ID()

	if s.cache != nil {
		_ = s.cache.InvalidateProperty(ctx, propertyID)
	}

	if s.pubsub != nil {
		_ = s.pubsub.PublishPropertyChanged(ctx, propertyID)
	}

	if s.events != nil {
		_ = s.events.Publish(messaging.BookingEvent{
			Type:       eventType,
			BookingID:  b.ID(),
			PropertyID: propertyID,
			GuestID:    b.User().ID(),
			StartDate:  b.DateRange().Start(),
			EndDate:    b.DateRange().End(),
			GuestCount: b.GuestCount(),
			TotalPrice: b.TotalPrice(),
			Status:     string(b.Status()),
		})
	}
}
