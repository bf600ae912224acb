package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/domain/reservation"
	"marketplace-catalog/internal/infra"
	"marketplace-catalog/internal/pkg/clock"
	"marketplace-catalog/internal/pkg/errs"
	"marketplace-catalog/internal/pkg/metrics"
	"marketplace-catalog/internal/usecase/queries"
	"marketplace-catalog/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ReserveItemInput struct {
	ProductID uuid.UUID
	Options   product.Options
	Quantity  int
}

type ReserveStockInput struct {
	UserID            string
	Items             []ReserveItemInput
	ExpirationMinutes *int
}

type ExpireSummary struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type ReservationCommands interface {
	ReserveStock(ctx context.Context, in ReserveStockInput) (*queries.ReservationView, error)
	ConfirmReservation(ctx context.Context, userID string) (*queries.ReservationView, error)
	ReleaseReservation(ctx context.Context, userID string) (*queries.ReservationView, error)
	ExpireReservations(ctx context.Context) (ExpireSummary, error)
}

type ReservationConfig struct {
	SweepBatchSize int32
}

type reservationUseCaseImpl struct {
	uow     shared.UnitOfWork
	mutator *StockMutator
	factory *reservation.Factory
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
	cfg     ReservationConfig
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	mutator *StockMutator,
	factory *reservation.Factory,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg ReservationConfig,
) ReservationCommands {
	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = 200
	}
	return &reservationUseCaseImpl{
		uow:     uow,
		mutator: mutator,
		factory: factory,
		clock:   clk,
		metrics: m,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
		cfg:     cfg,
	}
}

// ReserveStock decrements every item and persists a pending hold in one transaction,
// so a failure on any item leaves no partial decrement behind.
func (r *reservationUseCaseImpl) ReserveStock(ctx context.Context, in ReserveStockInput) (*queries.ReservationView, error) {
	ctx, span := r.tracer.Start(ctx, "reservation.reserve")
	defer span.End()
	span.SetAttributes(attribute.String("reservation.user_id", in.UserID), attribute.Int("reservation.items", len(in.Items)))

	items := make([]reservation.Item, 0, len(in.Items))
	for _, it := range in.Items {
		item, err := reservation.NewItem(it.ProductID, it.Options, it.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	res, err := r.factory.CreateReservation(in.UserID, items, in.ExpirationMinutes)
	if err != nil {
		return nil, err
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, item := range res.Items() {
			if _, merr := r.mutator.Mutate(ctx, tx, MutationRequest{
				ProductID:     item.ProductID,
				Options:       item.Options,
				MatchMode:     product.MatchExact,
				QuantityDelta: -item.Quantity,
				Reason:        shared.ReasonReserve,
				ReferenceID:   res.ID().String(),
			}); merr != nil {
				return merr
			}
		}

		if cerr := tx.Reservations().Create(ctx, tx.DB(), res); cerr != nil {
			return errs.Mark(cerr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		r.logger.WarnContext(ctx, "stock reservation rejected",
			"user_id", in.UserID,
			"reservation_id", res.ID(),
			"error", err.Error(),
		)
		return nil, err
	}

	r.metrics.ReservationTransitions.WithLabelValues(reservation.StatusPending.String()).Inc()
	r.logger.InfoContext(ctx, "stock reserved",
		"user_id", res.UserID(),
		"reservation_id", res.ID(),
		"items", len(res.Items()),
		"expires_at", res.ExpiresAt(),
	)
	return queries.NewReservationView(res), nil
}

func (r *reservationUseCaseImpl) ConfirmReservation(ctx context.Context, userID string) (*queries.ReservationView, error) {
	ctx, span := r.tracer.Start(ctx, "reservation.confirm")
	defer span.End()

	var (
		res     *reservation.StockReservation
		applied *reservation.Transition
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		applied = nil
		res, err = r.latest(ctx, tx, userID)
		if err != nil {
			return err
		}

		pending, ok := res.AsPending()
		if !ok {
			r.logger.InfoContext(ctx, "reservation is not pending, confirm skipped",
				"reservation_id", res.ID(),
				"status", res.Status().String(),
			)
			return nil
		}

		t := pending.Confirm(r.clock.Now())
		won, err := r.transition(ctx, tx, t)
		if err != nil {
			return err
		}
		if !won {
			res, err = r.reload(ctx, tx, t.ReservationID)
			return err
		}
		applied = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.viewAfter(res, applied)
}

func (r *reservationUseCaseImpl) ReleaseReservation(ctx context.Context, userID string) (*queries.ReservationView, error) {
	ctx, span := r.tracer.Start(ctx, "reservation.release")
	defer span.End()

	var (
		res     *reservation.StockReservation
		applied *reservation.Transition
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		applied = nil
		res, err = r.latest(ctx, tx, userID)
		if err != nil {
			return err
		}

		pending, ok := res.AsPending()
		if !ok {
			if res.Status() == reservation.StatusConfirmed {
				r.logger.WarnContext(ctx, "cannot release a confirmed reservation",
					"reservation_id", res.ID(),
					"user_id", userID,
				)
			} else {
				r.logger.InfoContext(ctx, "reservation already closed, release skipped",
					"reservation_id", res.ID(),
					"status", res.Status().String(),
				)
			}
			return nil
		}

		t := pending.Release(r.clock.Now())
		won, err := r.transition(ctx, tx, t)
		if err != nil {
			return err
		}
		if !won {
			res, err = r.reload(ctx, tx, t.ReservationID)
			return err
		}
		if _, err := r.restore(ctx, tx, t, shared.ReasonRelease); err != nil {
			return err
		}
		applied = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.viewAfter(res, applied)
}

// ExpireReservations handles each overdue hold in its own transaction; one failure never stops the sweep.
func (r *reservationUseCaseImpl) ExpireReservations(ctx context.Context) (ExpireSummary, error) {
	ctx, span := r.tracer.Start(ctx, "reservation.expire_sweep")
	defer span.End()

	now := r.clock.Now()
	var summary ExpireSummary

	var overdue []*reservation.StockReservation
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		overdue, err = tx.Reservations().FindExpiredPending(ctx, tx.DB(), now, r.cfg.SweepBatchSize)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return summary, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	summary.Scanned = len(overdue)

	for _, res := range overdue {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		pending, ok := res.AsPending()
		if !ok || !res.IsExpiredAt(now) {
			summary.Skipped++
			continue
		}

		var won bool
		err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			t := pending.Expire(now)
			var terr error
			won, terr = r.transition(ctx, tx, t)
			if terr != nil || !won {
				return terr
			}
			_, terr = r.restore(ctx, tx, t, shared.ReasonExpire)
			return terr
		})
		switch {
		case err != nil:
			summary.Failed++
			r.logger.ErrorContext(ctx, "failed to expire reservation",
				"reservation_id", res.ID(),
				"user_id", res.UserID(),
				"error", err.Error(),
			)
		case won:
			summary.Expired++
		default:
			summary.Skipped++
		}
	}

	span.SetAttributes(
		attribute.Int("sweep.scanned", summary.Scanned),
		attribute.Int("sweep.expired", summary.Expired),
		attribute.Int("sweep.skipped", summary.Skipped),
		attribute.Int("sweep.failed", summary.Failed),
	)
	if summary.Scanned > 0 {
		r.logger.InfoContext(ctx, "expired reservations swept",
			"scanned", summary.Scanned,
			"expired", summary.Expired,
			"skipped", summary.Skipped,
			"failed", summary.Failed,
		)
	}
	return summary, nil
}

func (r *reservationUseCaseImpl) latest(ctx context.Context, tx shared.Tx, userID string) (*reservation.StockReservation, error) {
	res, err := tx.Reservations().FindLatestByUser(ctx, tx.DB(), userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrReservationNotFound, "user %s", userID)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

// reload picks up the status another writer committed after a lost transition.
func (r *reservationUseCaseImpl) reload(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.StockReservation, error) {
	res, err := tx.Reservations().FindByID(ctx, tx.DB(), id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

// transition applies t only if the row is still pending. A false result means another
// writer (a second sweeper, a concurrent release) got there first.
func (r *reservationUseCaseImpl) transition(ctx context.Context, tx shared.Tx, t reservation.Transition) (bool, error) {
	won, err := tx.Reservations().Transition(ctx, tx.DB(), t)
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !won {
		r.logger.InfoContext(ctx, "reservation already transitioned by another writer",
			"reservation_id", t.ReservationID,
			"target", t.To.String(),
		)
		return false, nil
	}
	r.metrics.ReservationTransitions.WithLabelValues(t.To.String()).Inc()
	return true, nil
}

// viewAfter folds a committed transition into the loaded reservation.
func (r *reservationUseCaseImpl) viewAfter(res *reservation.StockReservation, applied *reservation.Transition) (*queries.ReservationView, error) {
	if applied != nil {
		if err := res.Apply(*applied); err != nil {
			return nil, err
		}
	}
	return queries.NewReservationView(res), nil
}

// restore credits the held units back. Business refusals are logged and left in the movement
// log for reconciliation; the terminal status stands regardless.
func (r *reservationUseCaseImpl) restore(ctx context.Context, tx shared.Tx, t reservation.Transition, reason shared.MovementReason) (int, error) {
	failed := 0
	for _, item := range t.Items {
		_, err := r.mutator.Mutate(ctx, tx, MutationRequest{
			ProductID:     item.ProductID,
			Options:       item.Options,
			MatchMode:     product.MatchExact,
			QuantityDelta: item.Quantity,
			Reason:        reason,
			ReferenceID:   t.ReservationID.String(),
		})
		if err == nil {
			continue
		}
		if !IsStockRejection(err) {
			return failed, err
		}
		failed++
		level := slog.LevelWarn
		if errors.Is(err, errs.ErrVersionConflict) {
			level = slog.LevelError
		}
		r.logger.Log(ctx, level, "stock restoration failed",
			"reservation_id", t.ReservationID,
			"product_id", item.ProductID,
			"quantity", item.Quantity,
			"reason", reason,
			"error", err.Error(),
		)
	}
	return failed, nil
}
