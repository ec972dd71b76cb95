package repository

import (
	"context"
	"errors"
	"time"

	"tablero/internal/domain/floor"
	"tablero/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tableColumns = `id, area_id, capacity, type, name, is_vip, can_merge, merge_group, x, y, version, updated_at`

type TableRepository struct {
	pool *pgxpool.Pool
}

func NewTableRepository(pool *pgxpool.Pool) *TableRepository {
	return &TableRepository{pool: pool}
}

func (r *TableRepository) List(ctx context.Context) ([]floor.Table, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+tableColumns+`
		FROM tables
		ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	defer rows.Close()
	return scanTables(rows)
}

func (r *TableRepository) ListByArea(ctx context.Context, areaID string) ([]floor.Table, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+tableColumns+`
		FROM tables
		WHERE area_id = $1
		ORDER BY id`, areaID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tables by area", err)
	}
	defer rows.Close()
	return scanTables(rows)
}

func (r *TableRepository) FindByID(ctx context.Context, id string) (*floor.Table, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+tableColumns+`
		FROM tables
		WHERE id = $1`, id)

	t, err := scanTable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("table not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find table", err)
	}
	return t, nil
}

func (r *TableRepository) Create(ctx context.Context, table floor.Table) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tables (`+tableColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		table.ID, table.AreaID, table.Capacity, string(table.Type), table.Name,
		table.IsVIP, table.CanMerge, table.MergeGroup, table.X, table.Y,
		table.Version, table.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("table already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create table", err)
	}
	return nil
}

// UpdatePosition is a conditional write: it succeeds only while the stored
// version equals currentVersion, which detects lost updates across
// processes without locking.
func (r *TableRepository) UpdatePosition(ctx context.Context, id string, x, y float64, currentVersion int, updatedAt time.Time) (*floor.Table, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tables
		SET x = $1, y = $2, version = version + 1, updated_at = $3
		WHERE id = $4 AND version = $5
		RETURNING `+tableColumns,
		x, y, updatedAt, id, currentVersion)

	t, err := scanTable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("table version moved", err, infra.KindConflict)
		}
		return nil, infra.WrapRepoErr("failed to update table position", err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTable(row rowScanner) (*floor.Table, error) {
	var (
		t        floor.Table
		typeName string
	)
	err := row.Scan(&t.ID, &t.AreaID, &t.Capacity, &typeName, &t.Name,
		&t.IsVIP, &t.CanMerge, &t.MergeGroup, &t.X, &t.Y, &t.Version, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Type = floor.TableType(typeName)
	return &t, nil
}

func scanTables(rows pgx.Rows) ([]floor.Table, error) {
	var tables []floor.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan table", err)
		}
		tables = append(tables, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate tables", err)
	}
	return tables, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
