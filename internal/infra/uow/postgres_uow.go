package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"marketplace-catalog/internal/infra/repository"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
	"marketplace-catalog/internal/pkg/errs"
	"marketplace-catalog/internal/pkg/metrics"
	"marketplace-catalog/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
	errRetriesExhausted  = errs.New("transaction failed after max retries")
)

// RetryPolicy bounds retries of serialization failures and deadlocks. A version conflict is
// a business outcome and is never retried here.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseDelay: 50 * time.Millisecond}
}

// backoff doubles per attempt and adds up to 20% jitter.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	wait := p.BaseDelay << attempt
	if span := int64(wait / 5); span > 0 {
		wait += time.Duration(rand.Int64N(span))
	}
	return wait
}

type PostgresUoW struct {
	pool    *pgxpool.Pool
	q       *sqlc.Queries
	policy  RetryPolicy
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, m *metrics.Metrics, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:    pool,
		q:       q,
		policy:  DefaultRetryPolicy(),
		metrics: m,
		logger:  logger,
	}
}

// Within runs at ReadCommitted. That is enough because every stock and status write is a
// conditional UPDATE whose row count tells the caller whether it won.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := u.attempt(ctx, fn)
		code, retryable := retryableCode(err)
		if !retryable {
			return err
		}
		if attempt >= u.policy.MaxRetries {
			u.logger.ErrorContext(ctx, "transaction failed after max retries", "attempts", attempt+1, "error", err)
			return errs.Mark(err, errRetriesExhausted)
		}

		u.metrics.TxRetries.WithLabelValues(code).Inc()
		wait := u.policy.backoff(attempt)
		u.logger.WarnContext(ctx, "retrying transaction",
			"attempt", attempt+1,
			"sqlstate", code,
			"wait_ms", wait.Milliseconds(),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// attempt owns one pgx transaction so the rollback defer never piles up across retries.
func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if err == nil {
			return
		}
		// Roll back even when ctx is already cancelled.
		if rbErr := pgxTx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			u.logger.WarnContext(ctx, "rollback failed", "error", rbErr)
		}
	}()

	if err = fn(ctx, newPgTx(pgxTx, u.q)); err != nil {
		return err
	}
	if err = pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// retryableCode returns the SQLSTATE of a serialization failure or deadlock.
func retryableCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return pgErr.Code, true
	default:
		return "", false
	}
}

// pgTx binds the write repositories to one transaction.
type pgTx struct {
	db           sqlc.DBTX
	products     shared.ProductRepository
	reservations shared.ReservationRepository
	movements    shared.StockMovementRepository
	orderEvents  shared.OrderEventRepository
}

func newPgTx(db sqlc.DBTX, q *sqlc.Queries) *pgTx {
	return &pgTx{
		db:           db,
		products:     repository.NewProductRepository(q),
		reservations: repository.NewReservationRepository(q),
		movements:    repository.NewStockMovementRepository(q),
		orderEvents:  repository.NewOrderEventRepository(q),
	}
}

func (t *pgTx) DB() sqlc.DBTX { return t.db }
func (t *pgTx) Products() shared.ProductRepository { return t.products }
func (t *pgTx) Reservations() shared.ReservationRepository { return t.reservations }
func (t *pgTx) Movements() shared.StockMovementRepository { return t.movements }
func (t *pgTx) OrderEvents() shared.OrderEventRepository { return t.orderEvents }
