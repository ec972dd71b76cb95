package commands_test

import (
	"context"
	"testing"
	"time"

	"tablero/internal/domain/floor"
	"tablero/internal/infra/memstore"
	"tablero/internal/pkg/clock"
	"tablero/internal/pkg/config"
	"tablero/internal/pkg/keymutex"
	"tablero/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestUpdatePosition(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the table and bumps the version", func(t *testing.T) {
		f := newCommandsFixture(t)

		updated, err := f.tables.UpdatePosition(ctx, commands.UpdateTablePositionInput{
			TableID:         "t-t1",
			X:               40,
			Y:               40,
			ExpectedVersion: intPtr(1),
			CanvasWidth:     1280,
			CanvasHeight:    800,
		})
		require.NoError(t, err)
		assert.InDelta(t, 40, updated.X, 1e-9)
		assert.InDelta(t, 40, updated.Y, 1e-9)
		assert.Equal(t, 2, updated.Version)
	})

	t.Run("clamps out-of-zone coordinates", func(t *testing.T) {
		f := newCommandsFixture(t)

		updated, err := f.tables.UpdatePosition(ctx, commands.UpdateTablePositionInput{
			TableID:      "t-t1",
			X:            -20,
			Y:            150,
			CanvasWidth:  1280,
			CanvasHeight: 800,
		})
		require.NoError(t, err)
		// terraza insets clamp x to 7; a 2-top is 10% x 16%, so y tops
		// out at 100-12-16 = 72
		assert.InDelta(t, 7, updated.X, 1e-9)
		assert.InDelta(t, 72, updated.Y, 1e-9)
	})

	t.Run("stale expected version conflicts without mutating", func(t *testing.T) {
		f := newCommandsFixture(t)

		_, err := f.tables.UpdatePosition(ctx, commands.UpdateTablePositionInput{
			TableID:         "t-t1",
			X:               40,
			Y:               40,
			ExpectedVersion: intPtr(1),
		})
		require.NoError(t, err)

		var occErr *commands.ConcurrencyConflictError
		_, err = f.tables.UpdatePosition(ctx, commands.UpdateTablePositionInput{
			TableID:         "t-t1",
			X:               60,
			Y:               60,
			ExpectedVersion: intPtr(1),
		})
		require.ErrorAs(t, err, &occErr)
		assert.Equal(t, 1, occErr.ExpectedVersion)
		assert.Equal(t, 2, occErr.CurrentVersion)

		current, err := f.store.Tables().FindByID(ctx, "t-t1")
		require.NoError(t, err)
		assert.InDelta(t, 40, current.X, 1e-9)
		assert.Equal(t, 2, current.Version)
	})

	t.Run("missing expected version skips the occ gate", func(t *testing.T) {
		f := newCommandsFixture(t)

		first, err := f.tables.UpdatePosition(ctx, commands.UpdateTablePositionInput{TableID: "t-t1", X: 40, Y: 40})
		require.NoError(t, err)

		second, err := f.tables.UpdatePosition(ctx, commands.UpdateTablePositionInput{TableID: "t-t1", X: 50, Y: 50})
		require.NoError(t, err)
		assert.Equal(t, first.Version+1, second.Version)
	})

	t.Run("unknown table", func(t *testing.T) {
		f := newCommandsFixture(t)

		_, err := f.tables.UpdatePosition(ctx, commands.UpdateTablePositionInput{TableID: "t-nope", X: 40, Y: 40})
		assert.ErrorIs(t, err, commands.ErrTableNotFound)
	})
}

func TestUpdatePositionWriteRaces(t *testing.T) {
	ctx := context.Background()

	newRacingTables := func(races int) (commands.TableCommands, *memstore.Store) {
		clk := clock.NewMockClock(testNoon)
		store := memstore.New(clk)
		repo := &racingTableRepo{TableRepository: store.Tables(), races: races}
		tables := commands.NewTableCommands(
			repo, store.Areas(), store, keymutex.New(), clk, config.NewTestConfig().Floor,
		)
		return tables, store
	}

	t.Run("absorbs a competing writer when no version is pinned", func(t *testing.T) {
		tables, _ := newRacingTables(1)

		updated, err := tables.UpdatePosition(ctx, commands.UpdateTablePositionInput{
			TableID: "t-t1", X: 40, Y: 40, CanvasWidth: 1280, CanvasHeight: 800,
		})
		require.NoError(t, err)
		// the competing write took version 2; the silent re-read landed ours
		assert.Equal(t, 3, updated.Version)
		assert.InDelta(t, 40, updated.X, 1e-9)
	})

	t.Run("persistent competing writers surface the conflict", func(t *testing.T) {
		tables, store := newRacingTables(2)

		var occErr *commands.ConcurrencyConflictError
		_, err := tables.UpdatePosition(ctx, commands.UpdateTablePositionInput{
			TableID: "t-t1", X: 40, Y: 40, CanvasWidth: 1280, CanvasHeight: 800,
		})
		require.ErrorAs(t, err, &occErr)
		assert.Equal(t, "t-t1", occErr.TableID)
		assert.Equal(t, 3, occErr.CurrentVersion)

		current, err := store.Tables().FindByID(ctx, "t-t1")
		require.NoError(t, err)
		assert.Equal(t, 3, current.Version)
	})

	t.Run("pinned version reports a write-time race", func(t *testing.T) {
		tables, _ := newRacingTables(1)

		var occErr *commands.ConcurrencyConflictError
		_, err := tables.UpdatePosition(ctx, commands.UpdateTablePositionInput{
			TableID: "t-t1", X: 40, Y: 40, ExpectedVersion: intPtr(1),
			CanvasWidth: 1280, CanvasHeight: 800,
		})
		require.ErrorAs(t, err, &occErr)
		assert.Equal(t, 1, occErr.ExpectedVersion)
		assert.Equal(t, 2, occErr.CurrentVersion)
	})
}

// racingTableRepo slips a competing position write in front of each update,
// as if another process moved the row after our read.
type racingTableRepo struct {
	commands.TableRepository
	races int
}

func (r *racingTableRepo) UpdatePosition(ctx context.Context, id string, x, y float64, currentVersion int, updatedAt time.Time) (*floor.Table, error) {
	if r.races > 0 {
		r.races--
		if _, err := r.TableRepository.UpdatePosition(ctx, id, 5, 5, currentVersion, updatedAt); err != nil {
			return nil, err
		}
	}
	return r.TableRepository.UpdatePosition(ctx, id, x, y, currentVersion, updatedAt)
}

func TestCreateTable(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a named table to an area with room", func(t *testing.T) {
		f := newCommandsFixture(t)

		created, err := f.tables.CreateTable(ctx, commands.CreateTableInput{AreaID: "area-patio"})
		require.NoError(t, err)
		assert.Equal(t, "area-patio", created.AreaID)
		assert.Equal(t, 4, created.Capacity)
		assert.Equal(t, floor.TableStandard, created.Type)
		assert.Equal(t, "P8", created.Name)
		assert.Equal(t, 1, created.Version)
	})

	t.Run("full area is rejected", func(t *testing.T) {
		f := newCommandsFixture(t)

		// terraza is seeded at its limit of 8
		_, err := f.tables.CreateTable(ctx, commands.CreateTableInput{AreaID: "area-terraza"})
		assert.ErrorIs(t, err, commands.ErrAreaFull)
	})

	t.Run("unknown area", func(t *testing.T) {
		f := newCommandsFixture(t)

		_, err := f.tables.CreateTable(ctx, commands.CreateTableInput{AreaID: "area-nope"})
		assert.ErrorIs(t, err, commands.ErrAreaNotFound)
	})

	t.Run("unsupported capacity", func(t *testing.T) {
		f := newCommandsFixture(t)

		_, err := f.tables.CreateTable(ctx, commands.CreateTableInput{AreaID: "area-patio", Capacity: 5})
		assert.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("circular tables cannot be created", func(t *testing.T) {
		f := newCommandsFixture(t)

		_, err := f.tables.CreateTable(ctx, commands.CreateTableInput{AreaID: "area-patio", Type: floor.TableCircular})
		assert.ErrorIs(t, err, commands.ErrValidation)
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("restores the seeded layout", func(t *testing.T) {
		f := newCommandsFixture(t)

		_, err := f.tables.CreateTable(ctx, commands.CreateTableInput{AreaID: "area-patio"})
		require.NoError(t, err)

		require.NoError(t, f.tables.Reset(ctx))

		tables, err := f.store.Tables().ListByArea(ctx, "area-patio")
		require.NoError(t, err)
		assert.Len(t, tables, 7)
	})

	t.Run("fails when the store cannot reseed", func(t *testing.T) {
		f := newCommandsFixture(t)

		noReset := commands.NewTableCommands(
			f.store.Tables(), f.store.Areas(), nil, keymutex.New(), f.clock, config.NewTestConfig().Floor,
		)
		assert.ErrorIs(t, noReset.Reset(ctx), commands.ErrResetUnsupported)
	})
}
