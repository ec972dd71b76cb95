package repository

import (
	"context"
	"errors"
	"time"

	"tablero/internal/infra"
	"tablero/internal/usecase/commands"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyRepository struct {
	pool *pgxpool.Pool
}

func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{pool: pool}
}

func (r *IdempotencyRepository) Find(ctx context.Context, key string) (*commands.IdempotencyRecord, error) {
	var rec commands.IdempotencyRecord
	err := r.pool.QueryRow(ctx, `
		SELECT key, reservation_id, request_hash, created_at
		FROM idempotency_keys
		WHERE key = $1`, key).
		Scan(&rec.Key, &rec.ReservationID, &rec.RequestHash, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	return &rec, nil
}

// upsertIdempotencySQL runs inside the reservation create transaction. The
// upsert absorbs a lost race between two processes writing the same key.
const upsertIdempotencySQL = `
		INSERT INTO idempotency_keys (key, reservation_id, request_hash, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET reservation_id = EXCLUDED.reservation_id,
		    request_hash = EXCLUDED.request_hash,
		    created_at = EXCLUDED.created_at`

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM idempotency_keys
		WHERE created_at < $1`, before)
	if err != nil {
		return infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return nil
}
