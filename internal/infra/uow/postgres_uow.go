package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"station-booking/internal/infra/db"
	"station-booking/internal/infra/repository"
	"station-booking/internal/pkg/errs"
	"station-booking/internal/usecase/shared"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

type PostgresUoW struct {
	pool       *pgxpool.Pool
	newBackOff func() backoff.BackOff
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool, newBackOff: newTxBackOff}
}

// ReadCommitted is enough here: admission takes a row lock on the resource
// and the exclusion constraint rejects whatever slips past it.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	attempts := 0
	op := func() error {
		attempts++
		err := u.attempt(ctx, opts, fn)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		slog.Warn("retrying transaction", "attempt", attempts, "wait_ms", wait.Milliseconds(), "error", err.Error())
	}

	err := backoff.RetryNotify(op, backoff.WithContext(u.newBackOff(), ctx), notify)
	if err != nil && retryable(err) {
		slog.Error("transaction failed after max retries", "attempts", attempts, "error", err.Error())
		return errs.Mark(err, shared.ErrMaxRetriesExceeded)
	}
	return err
}

// attempt runs fn in one transaction. Rollback happens here rather than in a
// deferred call so retries do not pile up open transactions.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(errs.Mark(err, errTransactionBegin), errs.ErrStoreUnavailable)
	}

	err = fn(ctx, &pgTx{dbtx: tx})
	if err == nil {
		if err = tx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", rbErr.Error())
	}
	return err
}

// pgTx builds repositories on first use.
type pgTx struct {
	dbtx db.DBTX

	resources shared.ResourceRepository
	bookings  shared.BookingRepository
	users     shared.UserRepository
	events    shared.EventRepository
}

func (t *pgTx) Resources() shared.ResourceRepository {
	if t.resources == nil {
		t.resources = repository.NewResourceRepository(t.dbtx)
	}
	return t.resources
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookings == nil {
		t.bookings = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookings
}

func (t *pgTx) Users() shared.UserRepository {
	if t.users == nil {
		t.users = repository.NewUserRepository(t.dbtx)
	}
	return t.users
}

func (t *pgTx) Events() shared.EventRepository {
	if t.events == nil {
		t.events = repository.NewEventRepository(t.dbtx)
	}
	return t.events
}
