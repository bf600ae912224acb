package components

import (
	"marketplace-catalog/internal/domain/reservation"
	"marketplace-catalog/internal/pkg/clock"
	"marketplace-catalog/internal/pkg/config"
	"marketplace-catalog/internal/usecase"
	"marketplace-catalog/internal/usecase/commands"
	"marketplace-catalog/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clk clock.Clock, cfg config.Config) *reservation.Factory {
		return reservation.NewFactory(clk, cfg.Reservation.DefaultExpiration)
	},
	func(cfg config.Config) commands.ReservationConfig {
		return commands.ReservationConfig{SweepBatchSize: cfg.Reservation.SweepBatchSize}
	},
	commands.NewStockMutator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewOrderStockUseCase,
		commands.NewAdminStockUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewProductStockQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
