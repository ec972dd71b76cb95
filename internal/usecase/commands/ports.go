package commands

import (
	"context"
	"time"

	"tablero/internal/domain/floor"
	"tablero/internal/domain/reservation"
)

// AreaRepository reads the immutable area reference data.
type AreaRepository interface {
	List(ctx context.Context) ([]floor.Area, error)
	FindByID(ctx context.Context, id string) (*floor.Area, error)
}

type TableRepository interface {
	List(ctx context.Context) ([]floor.Table, error)
	ListByArea(ctx context.Context, areaID string) ([]floor.Table, error)
	FindByID(ctx context.Context, id string) (*floor.Table, error)
	Create(ctx context.Context, table floor.Table) error
	// UpdatePosition persists new coordinates only when the stored version
	// still equals currentVersion, incrementing it by one. Returns a
	// conflict-kind repository error when the row moved underneath.
	UpdatePosition(ctx context.Context, id string, x, y float64, currentVersion int, updatedAt time.Time) (*floor.Table, error)
}

type ReservationRepository interface {
	ListByDate(ctx context.Context, date string) ([]reservation.Reservation, error)
	FindByID(ctx context.Context, id string) (*reservation.Reservation, error)
	Create(ctx context.Context, res reservation.Reservation) error
	// CreateWithIdempotency persists the reservation and its idempotency
	// record as one atomic write. Neither row survives when either part
	// fails, so a retried key never finds an orphaned reservation.
	CreateWithIdempotency(ctx context.Context, res reservation.Reservation, rec IdempotencyRecord) error
	UpdateStatus(ctx context.Context, id string, status reservation.Status) (*reservation.Reservation, error)
}

// IdempotencyRecord makes retried create requests safe: a non-expired record
// with the same fingerprint replays the stored reservation instead of
// inserting twice.
type IdempotencyRecord struct {
	Key           string
	ReservationID string
	RequestHash   string
	CreatedAt     time.Time
}

type IdempotencyRepository interface {
	Find(ctx context.Context, key string) (*IdempotencyRecord, error)
	DeleteExpired(ctx context.Context, before time.Time) error
}

// Resetter restores the seeded demo data. Only the memory driver supports it.
type Resetter interface {
	Reset(ctx context.Context) error
}
