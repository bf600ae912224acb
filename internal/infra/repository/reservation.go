package repository

import (
	"context"
	"time"

	"marketplace-catalog/internal/domain/reservation"
	"marketplace-catalog/internal/infra"
	"marketplace-catalog/internal/infra/repository/converter"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
	"marketplace-catalog/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateStockReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateStockReservationParams) error
	GetStockReservation(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.StockReservation, error)
	GetLatestReservationByUser(ctx context.Context, db sqlc.DBTX, userID string) (sqlc.StockReservation, error)
	ListExpiredPendingReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.ListExpiredPendingReservationsParams) ([]sqlc.StockReservation, error)
	TransitionReservationStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.TransitionReservationStatusParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
}

func NewReservationRepository(queries ReservationWriteQueries) *ReservationRepository {
	return &ReservationRepository{queries: queries}
}

func (r *ReservationRepository) Create(ctx context.Context, tx sqlc.DBTX, res *reservation.StockReservation) error {
	params, err := converter.ReservationToInfra(res)
	if err != nil {
		return infra.WrapRepoErr("failed to encode reservation", err, infra.KindDBFailure)
	}

	if err := r.queries.CreateStockReservation(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.StockReservation, error) {
	row, err := r.queries.GetStockReservation(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	res, err := converter.ReservationFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *ReservationRepository) FindLatestByUser(ctx context.Context, tx sqlc.DBTX, userID string) (*reservation.StockReservation, error) {
	row, err := r.queries.GetLatestReservationByUser(ctx, tx, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find latest reservation", err)
	}

	res, err := converter.ReservationFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *ReservationRepository) FindExpiredPending(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int32) ([]*reservation.StockReservation, error) {
	rows, err := r.queries.ListExpiredPendingReservations(ctx, tx, sqlc.ListExpiredPendingReservationsParams{
		Now:        pgconv.Timestamptz(now),
		BatchLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired reservations", err)
	}

	result := make([]*reservation.StockReservation, 0, len(rows))
	for _, row := range rows {
		res, err := converter.ReservationFromInfra(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode reservation", err, infra.KindDBFailure)
		}
		result = append(result, res)
	}
	return result, nil
}

func (r *ReservationRepository) Transition(ctx context.Context, tx sqlc.DBTX, t reservation.Transition) (bool, error) {
	n, err := r.queries.TransitionReservationStatus(ctx, tx, sqlc.TransitionReservationStatusParams{
		ToStatus:   t.To.String(),
		UpdatedAt:  pgconv.Timestamptz(t.At),
		ID:         t.ReservationID,
		FromStatus: t.From.String(),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition reservation", err)
	}
	return n == 1, nil
}
