package components

import (
	"tablero/internal/pkg/clock"
	"tablero/internal/pkg/config"
	"tablero/internal/pkg/keymutex"
	"tablero/internal/usecase/commands"
	"tablero/internal/usecase/positionqueue"
	"tablero/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	keymutex.New,
	func(cfg config.Config) config.FloorConfig { return cfg.Floor },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewTableCommands,
		func(tc commands.TableCommands) *positionqueue.Dispatcher {
			return positionqueue.NewDispatcher(tc.UpdatePosition)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewFloorQueries,
	),
)
