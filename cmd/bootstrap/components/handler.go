package components

import (
	"tablero/internal/handler"
	"tablero/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewFloorHandler,
		api.NewReservationHandler,
	),
	fx.Invoke(handler.NewRouter),
)
