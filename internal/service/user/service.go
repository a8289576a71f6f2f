package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"staybook/internal/domain"
	"staybook/internal/repository"
)

type Config struct {
	// NewID supplies user identifiers.
	NewID func() string
}

type Service struct {
	store repository.Store
	newID func() string
}

func New(store repository.Store, cfg Config) *Service {
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	return &Service{store: store, newID: cfg.NewID}
}

// Create validates and persists a new guest identity.
//
// Returns domain.ErrEmptyUserName when name is empty.
func (s *Service) Create(ctx context.Context, name string) (*domain.User, error) {
	const op = "service.user.Create"

	u, err := domain.NewUser(s.newID(), name)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := s.store.Users().Save(ctx, u); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return u, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	const op = "service.user.GetByID"

	u, err := s.store.Users().ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return u, nil
}
