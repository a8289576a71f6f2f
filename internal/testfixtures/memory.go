package testfixtures

import (
	"context"
	"fmt"
	"sync"

	"staybook/internal/domain"
	"staybook/internal/repository"
)

// MemoryStore is an in-memory repository.Store and repository.UnitOfWork.
// It holds live aggregate pointers, so a property registered with a booking
// is observed with that booking on the next load — the same visibility the
// transactional store provides.
type MemoryStore struct {
	mu         sync.RWMutex
	properties map[string]*domain.Property
	bookings   map[string]*domain.Booking
	users      map[string]*domain.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		properties: make(map[string]*domain.Property),
		bookings:   make(map[string]*domain.Booking),
		users:      make(map[string]*domain.User),
	}
}

func (m *MemoryStore) Properties() repository.Properties { return (*memoryProperties)(m) }
func (m *MemoryStore) Bookings() repository.Bookings     { return (*memoryBookings)(m) }
func (m *MemoryStore) Users() repository.Users           { return (*memoryUsers)(m) }

// Do runs fn against the store itself. There is no rollback: a failed fn may
// leave partial writes behind, which is acceptable for tests that assert on
// the error path only. After-commit hooks run when fn succeeds.
func (m *MemoryStore) Do(
	ctx context.Context,
	fn func(ctx context.Context, tx repository.Store, after func(repository.AfterCommit)) error,
) error {
	var hooks []repository.AfterCommit

	if err := fn(ctx, m, func(hook repository.AfterCommit) {
		hooks = append(hooks, hook)
	}); err != nil {
		return err
	}

	for _, hook := range hooks {
		hook(ctx)
	}

	return nil
}

type memoryProperties MemoryStore

func (m *memoryProperties) Save(_ context.Context, property *domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[property.ID()] = property
	return nil
}

func (m *memoryProperties) ByID(_ context.Context, id string) (*domain.Property, error) {
	const op = "testfixtures.memoryProperties.ByID"

	m.mu.RLock()
	defer m.mu.RUnlock()

	property, ok := m.properties[id]
	if !ok {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return property, nil
}

type memoryBookings MemoryStore

func (m *memoryBookings) Save(_ context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID()] = booking
	return nil
}

func (m *memoryBookings) ByID(_ context.Context, id string) (*domain.Booking, error) {
	const op = "testfixtures.memoryBookings.ByID"

	m.mu.RLock()
	defer m.mu.RUnlock()

	booking, ok := m.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return booking, nil
}

func (m *memoryBookings) ListByProperty(_ context.Context, propertyID string) ([]*domain.Booking, error) {
	const op = "testfixtures.memoryBookings.ListByProperty"

	m.mu.RLock()
	defer m.mu.RUnlock()

	property, ok := m.properties[propertyID]
	if !ok {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return property.Bookings(), nil
}

type memoryUsers MemoryStore

func (m *memoryUsers) Save(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID()] = user
	return nil
}

func (m *memoryUsers) ByID(_ context.Context, id string) (*domain.User, error) {
	const op = "testfixtures.memoryUsers.ByID"

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return user, nil
}
