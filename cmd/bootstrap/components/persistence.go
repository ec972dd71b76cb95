package components

import (
	"context"
	"log/slog"

	"tablero/internal/infra/db"
	"tablero/internal/infra/memstore"
	"tablero/internal/infra/repository"
	"tablero/internal/pkg/clock"
	"tablero/internal/pkg/config"
	"tablero/internal/pkg/errs"
	"tablero/internal/usecase/commands"

	"go.uber.org/fx"
)

// Repositories bundles the store-facing ports behind the configured driver.
// Resetter is nil when the driver cannot reseed (postgres).
type Repositories struct {
	Areas        commands.AreaRepository
	Tables       commands.TableRepository
	Reservations commands.ReservationRepository
	Idempotency  commands.IdempotencyRepository
	Resetter     commands.Resetter
}

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewRepositories,
		func(r Repositories) commands.AreaRepository { return r.Areas },
		func(r Repositories) commands.TableRepository { return r.Tables },
		func(r Repositories) commands.ReservationRepository { return r.Reservations },
		func(r Repositories) commands.IdempotencyRepository { return r.Idempotency },
		func(r Repositories) commands.Resetter { return r.Resetter },
	),
)

func NewRepositories(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (Repositories, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		store := memstore.New(clk)
		slog.Info("store initialized", "driver", cfg.Store.Driver)
		return Repositories{
			Areas:        store.Areas(),
			Tables:       store.Tables(),
			Reservations: store.Reservations(),
			Idempotency:  store.Idempotency(),
			Resetter:     store,
		}, nil

	case config.StorePostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return Repositories{}, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		slog.Info("store initialized", "driver", cfg.Store.Driver)
		return Repositories{
			Areas:        repository.NewAreaRepository(pool),
			Tables:       repository.NewTableRepository(pool),
			Reservations: repository.NewReservationRepository(pool),
			Idempotency:  repository.NewIdempotencyRepository(pool),
			Resetter:     nil,
		}, nil

	default:
		return Repositories{}, errs.Newf("unknown store driver %q", cfg.Store.Driver)
	}
}
