package property

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"staybook/internal/domain"
	redisx "staybook/internal/redis"
	"staybook/internal/repository"
	redisrepo "staybook/internal/repository/redis"
)

type Config struct {
	SummaryTTL      time.Duration
	AvailabilityTTL time.Duration
	// NewID supplies property identifiers.
	NewID func() string
}

type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	cfg   Config
	newID func() string
}

func New(store repository.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.SummaryTTL <= 0 {
		cfg.SummaryTTL = 60 * time.Second
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 15 * time.Second
	}

	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
		newID: cfg.NewID,
	}
}

type CreateParams struct {
	Title             string
	Description       string
	MaxGuests         int
	BasePricePerNight float64
}

// Summary is the cacheable read model of a property.
type Summary struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	MaxGuests         int     `json:"max_guests"`
	BasePricePerNight float64 `json:"base_price_per_night"`
}

// Availability reports whether a date range is free and what it would cost.
type Availability struct {
	Available  bool    `json:"available"`
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"total_price"`
}

// Create validates and persists a new property.
//
// Returns domain validation errors (empty title, non-positive max guests,
// invalid base price) unchanged.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domain.Property, error) {
	const op = "service.property.Create"

	property, err := domain.NewProperty(
		s.newID(),
		params.Title,
		params.Description,
		params.MaxGuests,
		params.BasePricePerNight,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := s.store.Properties().Save(ctx, property); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return property, nil
}

// GetByID loads the property aggregate with its bookings.
func (s *Service) GetByID(ctx context.Context, propertyID string) (*domain.Property, error) {
	const op = "service.property.GetByID"

	property, err := s.store.Properties().ByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrPropertyNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return property, nil
}

// GetSummary returns the property read model, served from cache when
// available.
func (s *Service) GetSummary(ctx context.Context, propertyID string) (Summary, error) {
	const op = "service.property.GetSummary"

	load := func(ctx context.Context) (Summary, error) {
		property, err := s.GetByID(ctx, propertyID)
		if err != nil {
			return Summary{}, err
		}

		return Summary{
			ID:                property.ID(),
			Title:             property.Title(),
			Description:       property.Description(),
			MaxGuests:         property.MaxGuests(),
			BasePricePerNight: property.BasePricePerNight(),
		}, nil
	}

	if s.cache == nil {
		return load(ctx)
	}

	summary, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyPropertySummary(propertyID),
		s.cfg.SummaryTTL,
		load,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("%s:%w", op, err)
	}

	return summary, nil
}

// CheckAvailability quotes a stay: whether the range is free of confirmed
// bookings, the night count, and the total price the range would cost.
//
// Returns date range validation errors unchanged.
func (s *Service) CheckAvailability(ctx context.Context, propertyID string, start, end time.Time) (Availability, error) {
	const op = "service.property.CheckAvailability"

	dateRange, err := domain.NewDateRange(start, end)
	if err != nil {
		return Availability{}, fmt.Errorf("%s:%w", op, err)
	}

	property, err := s.GetByID(ctx, propertyID)
	if err != nil {
		return Availability{}, err
	}

	return Availability{
		Available:  property.IsAvailable(dateRange),
		Nights:     dateRange.TotalNights(),
		TotalPrice: property.CalculateTotalPrice(dateRange),
	}, nil
}
