package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	"staybook/internal/repository"
	postgresrepo "staybook/internal/repository/postgres"
)

// UoW implements repository.UnitOfWork over the postgres store. Hooks
// registered during the transaction run only after a successful commit.
type UoW struct {
	store *postgresrepo.Store
}

func New(store *postgresrepo.Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn against a transaction-bound store. After a successful commit,
// it executes all after-commit hooks.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, tx repository.Store, after func(repository.AfterCommit)) error,
) error {
	return u.DoWithOpts(ctx, nil, fn)
}

// DoWithOpts runs fn with the given transaction options. After a successful
// commit, it executes all after-commit hooks.
func (u *UoW) DoWithOpts(
	ctx context.Context,
	opts *pgx.TxOptions,
	fn func(ctx context.Context, tx repository.Store, after func(repository.AfterCommit)) error,
) error {
	var hooks []repository.AfterCommit

	err := u.store.RunTx(ctx, opts, func(ctx context.Context, tx postgresrepo.DB) error {
		return fn(ctx, u.store.Bind(tx), func(h repository.AfterCommit) {
			hooks = append(hooks, h)
		})
	})
	if err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}
