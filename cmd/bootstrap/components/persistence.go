package components

import (
	"marketplace-catalog/internal/infra/readstore"
	sqlc "marketplace-catalog/internal/infra/sqlc/generated"
	"marketplace-catalog/internal/infra/uow"
	"marketplace-catalog/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Write-side repositories are built per transaction by the UnitOfWork, so only
// the read side needs explicit providers.
var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// ProductStock
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ProductStockViewQueries)),
		),
		fx.Annotate(
			readstore.NewProductStockReadStore,
			fx.As(new(queries.ProductStockViewRepo)),
		),
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationViewQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
