package queries

import (
	"context"

	"marketplace-catalog/internal/infra"
	"marketplace-catalog/internal/pkg/errs"
)

type ReservationQueries interface {
	GetLatestByUser(ctx context.Context, userID string) (*ReservationView, error)
}

type ReservationViewRepo interface {
	FindLatestByUser(ctx context.Context, userID string) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetLatestByUser(ctx context.Context, userID string) (*ReservationView, error) {
	view, err := q.repo.FindLatestByUser(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrReservationNotFound, "user %s", userID)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
