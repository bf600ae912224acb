package readstore

import (
	"context"

	"marketplace-catalog/internal/infra"
	"marketplace-catalog/internal/infra/repository/converter"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
	"marketplace-catalog/internal/pkg/pgconv"
	"marketplace-catalog/internal/usecase/queries"
)

type ReservationViewQueries interface {
	GetLatestReservationByUser(ctx context.Context, db sqlc.DBTX, userID string) (sqlc.StockReservation, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindLatestByUser(ctx context.Context, userID string) (*queries.ReservationView, error) {
	row, err := r.queries.GetLatestReservationByUser(ctx, r.db, userID)
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
	return queries.NewReservationView(res), nil
}
