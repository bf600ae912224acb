package components

import (
	"marketplace-catalog/internal/handler"
	"marketplace-catalog/internal/handler/api"
	"marketplace-catalog/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewProductStockHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		func(r *api.ReservationHandler, p *api.ProductStockHandler, a *api.AdminHandler) handler.Handlers {
			return handler.Handlers{Reservation: r, ProductStock: p, Admin: a}
		},
	),
	fx.Invoke(handler.NewRouter),
)
