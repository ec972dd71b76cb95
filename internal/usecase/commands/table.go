package commands

import (
	"context"
	"fmt"
	"strings"

	"tablero/internal/domain/floor"
	"tablero/internal/infra"
	"tablero/internal/pkg/clock"
	"tablero/internal/pkg/config"
	"tablero/internal/pkg/errs"
	"tablero/internal/pkg/keymutex"

	"github.com/google/uuid"
)

type UpdateTablePositionInput struct {
	TableID         string
	X               float64
	Y               float64
	ExpectedVersion *int
	AreaID          string
	CanvasWidth     float64
	CanvasHeight    float64
	IsMergedView    bool
}

type CreateTableInput struct {
	AreaID   string
	Capacity int
	Type     floor.TableType
}

type TableCommands interface {
	UpdatePosition(ctx context.Context, input UpdateTablePositionInput) (*floor.Table, error)
	CreateTable(ctx context.Context, input CreateTableInput) (*floor.Table, error)
	Reset(ctx context.Context) error
}

type tableCommands struct {
	tables   TableRepository
	areas    AreaRepository
	resetter Resetter // nil when the store cannot reseed
	locks    *keymutex.KeyMutex
	clock    clock.Clock
	cfg      config.FloorConfig
}

func NewTableCommands(
	tables TableRepository,
	areas AreaRepository,
	resetter Resetter,
	locks *keymutex.KeyMutex,
	clk clock.Clock,
	cfg config.FloorConfig,
) TableCommands {
	return &tableCommands{
		tables:   tables,
		areas:    areas,
		resetter: resetter,
		locks:    locks,
		clock:    clk,
		cfg:      cfg,
	}
}

// UpdatePosition applies optimistic concurrency control and geometric
// clamping, then persists the new coordinates with version+1.
func (c *tableCommands) UpdatePosition(ctx context.Context, input UpdateTablePositionInput) (*floor.Table, error) {
	if input.TableID == "" {
		return nil, errs.Mark(errs.New("tableId is required"), ErrValidation)
	}

	lockKey := "tbl:" + input.TableID
	c.locks.Lock(lockKey)
	defer c.locks.Unlock(lockKey)

	// A caller without a pinned version gets one silent re-read when another
	// process moves the row between our read and write; a pinned version
	// always surfaces the conflict.
	for attempt := 0; ; attempt++ {
		table, err := c.tables.FindByID(ctx, input.TableID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrTableNotFound
			}
			return nil, errs.Mark(err, ErrStoreFailure)
		}

		if input.ExpectedVersion != nil && *input.ExpectedVersion != table.Version {
			return nil, &ConcurrencyConflictError{
				TableID:         table.ID,
				ExpectedVersion: *input.ExpectedVersion,
				CurrentVersion:  table.Version,
				UpdatedAt:       table.UpdatedAt,
			}
		}

		areaID := input.AreaID
		if areaID == "" {
			areaID = table.AreaID
		}
		canvasWidth := input.CanvasWidth
		if canvasWidth <= 0 {
			canvasWidth = float64(c.cfg.CanvasWidthPxDefault)
		}
		canvasHeight := input.CanvasHeight
		if canvasHeight <= 0 {
			canvasHeight = float64(c.cfg.CanvasHeightPxDefault)
		}

		x, y := floor.ClampPosition(floor.ClampRequest{
			TableType:    table.Type,
			Capacity:     table.Capacity,
			AreaID:       areaID,
			X:            input.X,
			Y:            input.Y,
			CanvasWidth:  canvasWidth,
			CanvasHeight: canvasHeight,
			IsMergedView: input.IsMergedView,
		})

		updated, err := c.tables.UpdatePosition(ctx, table.ID, x, y, table.Version, c.clock.Now())
		if err == nil {
			return updated, nil
		}
		if !infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrStoreFailure)
		}
		if input.ExpectedVersion == nil && attempt == 0 {
			continue
		}

		current, findErr := c.tables.FindByID(ctx, table.ID)
		if findErr != nil {
			return nil, errs.Mark(err, ErrStoreFailure)
		}
		expected := table.Version
		if input.ExpectedVersion != nil {
			expected = *input.ExpectedVersion
		}
		return nil, &ConcurrencyConflictError{
			TableID:         table.ID,
			ExpectedVersion: expected,
			CurrentVersion:  current.Version,
			UpdatedAt:       current.UpdatedAt,
		}
	}
}

var allowedCreateCapacities = map[int]bool{2: true, 4: true, 6: true, 8: true}

// CreateTable adds a table to an area, enforcing the area's maxTables limit.
func (c *tableCommands) CreateTable(ctx context.Context, input CreateTableInput) (*floor.Table, error) {
	if input.AreaID == "" {
		return nil, errs.Mark(errs.New("areaId is required"), ErrValidation)
	}
	capacity := input.Capacity
	if capacity == 0 {
		capacity = 4
	}
	if !allowedCreateCapacities[capacity] {
		return nil, errs.Mark(errs.Newf("capacity %d is not offered", capacity), ErrValidation)
	}
	tableType := input.Type
	if tableType == "" {
		tableType = floor.TableStandard
	}
	if tableType != floor.TableStandard && tableType != floor.TableSquare {
		return nil, errs.Mark(errs.Newf("type %s cannot be created", tableType), ErrValidation)
	}

	area, err := c.areas.FindByID(ctx, input.AreaID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAreaNotFound
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	lockKey := "area:" + area.ID
	c.locks.Lock(lockKey)
	defer c.locks.Unlock(lockKey)

	existing, err := c.tables.ListByArea(ctx, area.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	if len(existing) >= area.MaxTables {
		return nil, ErrAreaFull
	}

	table := floor.Table{
		ID:        "t-" + uuid.NewString(),
		AreaID:    area.ID,
		Capacity:  capacity,
		Type:      tableType,
		Name:      nextTableName(area.Name, len(existing)),
		X:         40,
		Y:         40,
		Version:   1,
		UpdatedAt: c.clock.Now(),
	}
	table.X, table.Y = floor.ClampPosition(floor.ClampRequest{
		TableType:    table.Type,
		Capacity:     table.Capacity,
		AreaID:       table.AreaID,
		X:            table.X,
		Y:            table.Y,
		CanvasWidth:  float64(c.cfg.CanvasWidthPxDefault),
		CanvasHeight: float64(c.cfg.CanvasHeightPxDefault),
	})

	if err := c.tables.Create(ctx, table); err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return &table, nil
}

func (c *tableCommands) Reset(ctx context.Context) error {
	if c.resetter == nil {
		return ErrResetUnsupported
	}
	if err := c.resetter.Reset(ctx); err != nil {
		return errs.Mark(err, ErrStoreFailure)
	}
	return nil
}

// nextTableName derives names like T9 from the area's initial and the
// current table count.
func nextTableName(areaName string, count int) string {
	initial := "X"
	if areaName != "" {
		initial = strings.ToUpper(areaName[:1])
	}
	return fmt.Sprintf("%s%d", initial, count+1)
}
