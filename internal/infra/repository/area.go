package repository

import (
	"context"
	"errors"

	"tablero/internal/domain/floor"
	"tablero/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AreaRepository struct {
	pool *pgxpool.Pool
}

func NewAreaRepository(pool *pgxpool.Pool) *AreaRepository {
	return &AreaRepository{pool: pool}
}

func (r *AreaRepository) List(ctx context.Context) ([]floor.Area, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, max_tables
		FROM areas
		ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list areas", err)
	}
	defer rows.Close()

	var areas []floor.Area
	for rows.Next() {
		var a floor.Area
		if err := rows.Scan(&a.ID, &a.Name, &a.MaxTables); err != nil {
			return nil, infra.WrapRepoErr("failed to scan area", err)
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate areas", err)
	}
	return areas, nil
}

func (r *AreaRepository) FindByID(ctx context.Context, id string) (*floor.Area, error) {
	var a floor.Area
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, max_tables
		FROM areas
		WHERE id = $1`, id).Scan(&a.ID, &a.Name, &a.MaxTables)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("area not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find area", err)
	}
	return &a, nil
}
