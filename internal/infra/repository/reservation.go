package repository

import (
	"context"
	"errors"

	"tablero/internal/domain/reservation"
	"tablero/internal/infra"
	"tablero/internal/usecase/commands"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = `id, table_ids, client_name, party_size, date, start_time, end_time, status, duration, notes`

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) ListByDate(ctx context.Context, date string) ([]reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE date = $1
		ORDER BY created_at`, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var reservations []reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		reservations = append(reservations, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return reservations, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE id = $1`, id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return res, nil
}

const insertReservationSQL = `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *ReservationRepository) Create(ctx context.Context, res reservation.Reservation) error {
	_, err := r.pool.Exec(ctx, insertReservationSQL,
		res.ID, res.TableIDs, res.ClientName, res.PartySize, res.Date,
		res.StartTime, res.EndTime, string(res.Status), res.Duration, res.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("reservation already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

// CreateWithIdempotency inserts the reservation and its idempotency record
// in one transaction. A failure on either statement rolls back both, so a
// retry with the same key starts from a clean slate.
func (r *ReservationRepository) CreateWithIdempotency(ctx context.Context, res reservation.Reservation, rec commands.IdempotencyRecord) error {
	err := runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertReservationSQL,
			res.ID, res.TableIDs, res.ClientName, res.PartySize, res.Date,
			res.StartTime, res.EndTime, string(res.Status), res.Duration, res.Notes,
		); err != nil {
			if isUniqueViolation(err) {
				return infra.WrapRepoErr("reservation already exists", err, infra.KindDuplicateKey)
			}
			return infra.WrapRepoErr("failed to create reservation", err)
		}
		if _, err := tx.Exec(ctx, upsertIdempotencySQL,
			rec.Key, rec.ReservationID, rec.RequestHash, rec.CreatedAt,
		); err != nil {
			return infra.WrapRepoErr("failed to save idempotency key", err)
		}
		return nil
	})
	return err
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status reservation.Status) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE reservations
		SET status = $1
		WHERE id = $2
		RETURNING `+reservationColumns,
		string(status), id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update reservation status", err)
	}
	return res, nil
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		res    reservation.Reservation
		status string
	)
	err := row.Scan(&res.ID, &res.TableIDs, &res.ClientName, &res.PartySize,
		&res.Date, &res.StartTime, &res.EndTime, &status, &res.Duration, &res.Notes)
	if err != nil {
		return nil, err
	}
	res.Status = reservation.Status(status)
	return &res, nil
}
