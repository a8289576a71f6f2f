package postgres

import (
	"context"
	"fmt"

	"staybook/internal/domain"
)

type UserRepo struct {
	db DB
}

func (r *UserRepo) Save(ctx context.Context, user *domain.User) error {
	const op = "postgres.UserRepo.Save"

	_, err := r.db.Exec(ctx,
		`INSERT INTO users(id, name)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		user.ID(), user.Name(),
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// ByID loads a guest identity.
//
// Returns:
//   - error: repository.ErrNotFound if the user does not exist.
func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	const op = "postgres.UserRepo.ByID"

	var name string
	err := r.db.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, id).Scan(&name)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	user, err := domain.NewUser(id, name)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return user, nil
}
