// Package memstore is the in-memory persistence driver. It reproduces the
// seeded demo floor, backs the unit and handler tests, and supports the
// admin reset operation.
package memstore

import (
	"context"
	"sync"
	"time"

	"tablero/internal/domain/floor"
	"tablero/internal/domain/reservation"
	"tablero/internal/infra"
	"tablero/internal/pkg/clock"
	"tablero/internal/usecase/commands"
)

// Store holds all collections under one lock. Slices keep insertion order;
// the visual status projector depends on reservation input order.
type Store struct {
	mu           sync.RWMutex
	clock        clock.Clock
	areas        []floor.Area
	tables       []floor.Table
	reservations []reservation.Reservation
	idempotency  map[string]commands.IdempotencyRecord
}

func New(clk clock.Clock) *Store {
	s := &Store{clock: clk}
	s.seed()
	return s
}

// NewEmpty returns a store without seed data, for tests that build their own
// fixtures.
func NewEmpty(clk clock.Clock) *Store {
	return &Store{
		clock:       clk,
		idempotency: make(map[string]commands.IdempotencyRecord),
	}
}

func (s *Store) seed() {
	now := s.clock.Now()
	s.areas = SeedAreas()
	s.tables = SeedTables(now)
	s.reservations = SeedReservations(now)
	s.idempotency = make(map[string]commands.IdempotencyRecord)
}

// Reset restores the seeded demo data.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed()
	return nil
}

// Areas, Tables, Reservations and Idempotency expose the repository facades.
// Separate types are needed because the repository interfaces share method
// names with different signatures.
func (s *Store) Areas() *AreaStore               { return &AreaStore{s} }
func (s *Store) Tables() *TableStore             { return &TableStore{s} }
func (s *Store) Reservations() *ReservationStore { return &ReservationStore{s} }
func (s *Store) Idempotency() *IdempotencyStore  { return &IdempotencyStore{s} }

type AreaStore struct{ s *Store }

func (a *AreaStore) List(_ context.Context) ([]floor.Area, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return append([]floor.Area(nil), a.s.areas...), nil
}

func (a *AreaStore) FindByID(_ context.Context, id string) (*floor.Area, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	for _, area := range a.s.areas {
		if area.ID == id {
			found := area
			return &found, nil
		}
	}
	return nil, infra.WrapRepoErr("area not found", nil, infra.KindNotFound)
}

type TableStore struct{ s *Store }

func (t *TableStore) List(_ context.Context) ([]floor.Table, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	return append([]floor.Table(nil), t.s.tables...), nil
}

func (t *TableStore) ListByArea(_ context.Context, areaID string) ([]floor.Table, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	var out []floor.Table
	for _, table := range t.s.tables {
		if table.AreaID == areaID {
			out = append(out, table)
		}
	}
	return out, nil
}

func (t *TableStore) FindByID(_ context.Context, id string) (*floor.Table, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	for _, table := range t.s.tables {
		if table.ID == id {
			found := table
			return &found, nil
		}
	}
	return nil, infra.WrapRepoErr("table not found", nil, infra.KindNotFound)
}

func (t *TableStore) Create(_ context.Context, table floor.Table) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, existing := range t.s.tables {
		if existing.ID == table.ID {
			return infra.WrapRepoErr("table already exists", nil, infra.KindDuplicateKey)
		}
	}
	t.s.tables = append(t.s.tables, table)
	return nil
}

func (t *TableStore) UpdatePosition(_ context.Context, id string, x, y float64, currentVersion int, updatedAt time.Time) (*floor.Table, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i := range t.s.tables {
		if t.s.tables[i].ID != id {
			continue
		}
		if t.s.tables[i].Version != currentVersion {
			return nil, infra.WrapRepoErr("table version moved", nil, infra.KindConflict)
		}
		t.s.tables[i].X = x
		t.s.tables[i].Y = y
		t.s.tables[i].Version++
		t.s.tables[i].UpdatedAt = updatedAt
		updated := t.s.tables[i]
		return &updated, nil
	}
	return nil, infra.WrapRepoErr("table not found", nil, infra.KindNotFound)
}

type ReservationStore struct{ s *Store }

func (r *ReservationStore) ListByDate(_ context.Context, date string) ([]reservation.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []reservation.Reservation
	for _, res := range r.s.reservations {
		if res.Date == date {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *ReservationStore) FindByID(_ context.Context, id string) (*reservation.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, res := range r.s.reservations {
		if res.ID == id {
			found := res
			return &found, nil
		}
	}
	return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
}

func (r *ReservationStore) Create(_ context.Context, res reservation.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.create(res)
}

// CreateWithIdempotency writes both rows under the single store lock, so a
// rejected reservation never leaves its idempotency record behind.
func (r *ReservationStore) CreateWithIdempotency(_ context.Context, res reservation.Reservation, rec commands.IdempotencyRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.create(res); err != nil {
		return err
	}
	r.s.idempotency[rec.Key] = rec
	return nil
}

// create requires the store lock to be held.
func (r *ReservationStore) create(res reservation.Reservation) error {
	for _, existing := range r.s.reservations {
		if existing.ID == res.ID {
			return infra.WrapRepoErr("reservation already exists", nil, infra.KindDuplicateKey)
		}
	}
	r.s.reservations = append(r.s.reservations, res)
	return nil
}

func (r *ReservationStore) UpdateStatus(_ context.Context, id string, status reservation.Status) (*reservation.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.reservations {
		if r.s.reservations[i].ID == id {
			r.s.reservations[i].Status = status
			updated := r.s.reservations[i]
			return &updated, nil
		}
	}
	return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
}

type IdempotencyStore struct{ s *Store }

func (i *IdempotencyStore) Find(_ context.Context, key string) (*commands.IdempotencyRecord, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	rec, ok := i.s.idempotency[key]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return &rec, nil
}

func (i *IdempotencyStore) DeleteExpired(_ context.Context, before time.Time) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	for key, rec := range i.s.idempotency {
		if rec.CreatedAt.Before(before) {
			delete(i.s.idempotency, key)
		}
	}
	return nil
}
