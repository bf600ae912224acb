package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace-catalog/internal/domain/product"
	"marketplace-catalog/internal/infra"
	"marketplace-catalog/internal/pkg/errs"
	"marketplace-catalog/internal/pkg/metrics"
	"marketplace-catalog/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "marketplace-catalog/usecase/commands"

type MutationRequest struct {
	ProductID     uuid.UUID
	Options       product.Options
	MatchMode     product.MatchMode
	QuantityDelta int
	SoldDelta     int
	// ExpectedVersion pins the write to a version the caller already observed.
	// Nil means the version read inside this call.
	ExpectedVersion *int64
	Reason          shared.MovementReason
	ReferenceID     string
}

type MutationResult struct {
	ProductID   uuid.UUID
	Position    int
	OldQuantity int
	NewQuantity int
	NewVersion  int64
}

// StockMutator is the single write path for variant quantities.
type StockMutator struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewStockMutator(m *metrics.Metrics, logger *slog.Logger) *StockMutator {
	return &StockMutator{
		metrics: m,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// Mutate reads the product, resolves the variant and applies the delta with one
// version-guarded UPDATE. It never retries; a lost race returns ErrVersionConflict.
func (s *StockMutator) Mutate(ctx context.Context, tx shared.Tx, req MutationRequest) (MutationResult, error) {
	ctx, span := s.tracer.Start(ctx, "stock.mutate")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", req.ProductID.String()),
		attribute.String("stock.reason", string(req.Reason)),
		attribute.Int("stock.quantity_delta", req.QuantityDelta),
		attribute.Int("stock.sold_delta", req.SoldDelta),
	)

	res, position, err := s.mutate(ctx, tx, req)
	if err != nil {
		outcome := outcomeOf(err)
		s.metrics.StockMutations.WithLabelValues(string(req.Reason), outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		s.record(ctx, tx, req, position, err)
		return MutationResult{}, err
	}

	if err := s.recordApplied(ctx, tx, req, position); err != nil {
		s.metrics.StockMutations.WithLabelValues(string(req.Reason), metrics.OutcomeFailed).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, metrics.OutcomeFailed)
		return MutationResult{}, err
	}

	s.metrics.StockMutations.WithLabelValues(string(req.Reason), metrics.OutcomeApplied).Inc()
	span.SetAttributes(
		attribute.Int("variant.position", res.Position),
		attribute.Int64("product.version", res.NewVersion),
	)
	s.logger.DebugContext(ctx, "stock mutated",
		"product_id", req.ProductID,
		"position", res.Position,
		"old_quantity", res.OldQuantity,
		"new_quantity", res.NewQuantity,
		"version", res.NewVersion,
		"reason", req.Reason,
	)
	return res, nil
}

func (s *StockMutator) mutate(ctx context.Context, tx shared.Tx, req MutationRequest) (MutationResult, int, error) {
	p, err := tx.Products().FindByID(ctx, tx.DB(), req.ProductID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return MutationResult{}, -1, errs.Wrapf(errs.ErrProductNotFound, "product %s", req.ProductID)
		}
		return MutationResult{}, -1, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	position, _, err := p.Variants().Find(req.Options, req.MatchMode)
	if err != nil {
		return MutationResult{}, -1, errs.Wrapf(err, "product %s", req.ProductID)
	}

	if req.ExpectedVersion != nil && *req.ExpectedVersion != p.Version() {
		return MutationResult{}, position, errs.Wrapf(errs.ErrVersionConflict,
			"product %s: expected version %d, current %d", req.ProductID, *req.ExpectedVersion, p.Version())
	}

	change, err := p.PlanDelta(position, req.QuantityDelta, req.SoldDelta)
	if err != nil {
		if errors.Is(err, errs.ErrInsufficientStock) {
			return MutationResult{}, position, errs.Wrapf(err,
				"product %s variant %d: have %d, delta %d", req.ProductID, position, p.Variants()[position].Quantity(), req.QuantityDelta)
		}
		return MutationResult{}, position, err
	}

	applied, err := tx.Products().ApplyVariantDelta(ctx, tx.DB(), shared.VariantDelta{
		ProductID:       req.ProductID,
		Position:        change.Position,
		QuantityDelta:   req.QuantityDelta,
		SoldDelta:       change.SoldDelta,
		ExpectedVersion: change.ExpectedVersion,
	})
	if err != nil {
		return MutationResult{}, position, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !applied.Applied {
		return MutationResult{}, position, errs.Wrapf(errs.ErrVersionConflict,
			"product %s: version %d is stale", req.ProductID, change.ExpectedVersion)
	}

	return MutationResult{
		ProductID:   req.ProductID,
		Position:    change.Position,
		OldQuantity: change.OldQuantity,
		NewQuantity: applied.Quantity,
		NewVersion:  applied.Version,
	}, position, nil
}

func (s *StockMutator) recordApplied(ctx context.Context, tx shared.Tx, req MutationRequest, position int) error {
	err := tx.Movements().Record(ctx, tx.DB(), movementOf(req, position, shared.MovementApplied, nil))
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// record keeps a failed movement row. It is committed only when the caller's transaction survives.
func (s *StockMutator) record(ctx context.Context, tx shared.Tx, req MutationRequest, position int, cause error) {
	if errs.Is(cause, errs.ErrDatabaseOperationFailed) {
		return
	}
	if err := tx.Movements().Record(ctx, tx.DB(), movementOf(req, position, shared.MovementFailed, cause)); err != nil {
		s.logger.WarnContext(ctx, "failed to record stock movement",
			"product_id", req.ProductID,
			"reason", req.Reason,
			"error", err.Error(),
		)
	}
}

func movementOf(req MutationRequest, position int, outcome shared.MovementOutcome, cause error) shared.StockMovement {
	return shared.StockMovement{
		ProductID:     req.ProductID,
		Position:      position,
		Options:       req.Options,
		QuantityDelta: req.QuantityDelta,
		SoldDelta:     req.SoldDelta,
		Reason:        req.Reason,
		ReferenceID:   req.ReferenceID,
		Outcome:       outcome,
		Err:           cause,
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, errs.ErrVersionConflict):
		return metrics.OutcomeConflict
	case IsStockRejection(err):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeFailed
	}
}

// IsStockRejection reports business refusals of a mutation, as opposed to infrastructure failures.
func IsStockRejection(err error) bool {
	return errs.IsAny(err,
		errs.ErrInsufficientStock,
		errs.ErrVersionConflict,
		errs.ErrProductNotFound,
		errs.ErrVariantNotFound,
		errs.ErrMissingOptions,
	)
}
