package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"tablero/internal/domain/floor"
	"tablero/internal/domain/reservation"
	"tablero/internal/infra"
	"tablero/internal/pkg/clock"
	"tablero/internal/pkg/config"
	"tablero/internal/pkg/errs"
	"tablero/internal/pkg/keymutex"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	TableIDs   []string           `json:"tableIds"`
	ClientName string             `json:"clientName"`
	PartySize  int                `json:"partySize"`
	Date       string             `json:"date"`
	StartTime  string             `json:"startTime"`
	EndTime    string             `json:"endTime"`
	Status     reservation.Status `json:"status"`
	Duration   int                `json:"duration"`
	Notes      string             `json:"notes"`
}

type CreateWalkInInput struct {
	TableID    string
	ClientName string
	PartySize  int
	Notes      string
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, input CreateReservationInput, idempotencyKey string) (*reservation.Reservation, error)
	CreateWalkIn(ctx context.Context, input CreateWalkInInput) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, id string, next reservation.Status) (*reservation.Reservation, error)
	ReleaseTable(ctx context.Context, tableID string) (*reservation.Reservation, bool, error)
}

type reservationCommands struct {
	reservations ReservationRepository
	tables       TableRepository
	idempotency  IdempotencyRepository
	locks        *keymutex.KeyMutex
	clock        clock.Clock
	cfg          config.FloorConfig
}

func NewReservationCommands(
	reservations ReservationRepository,
	tables TableRepository,
	idempotency IdempotencyRepository,
	locks *keymutex.KeyMutex,
	clk clock.Clock,
	cfg config.FloorConfig,
) ReservationCommands {
	return &reservationCommands{
		reservations: reservations,
		tables:       tables,
		idempotency:  idempotency,
		locks:        locks,
		clock:        clk,
		cfg:          cfg,
	}
}

// CreateReservation runs the create gates in order, first failure wins:
// structural validation, idempotency replay/reuse, past-time rejection,
// table overlap, VIP rules. Nothing is written until every gate passes.
func (c *reservationCommands) CreateReservation(
	ctx context.Context,
	input CreateReservationInput,
	idempotencyKey string,
) (*reservation.Reservation, error) {
	if len(idempotencyKey) < 8 || len(idempotencyKey) > 128 {
		return nil, errs.Mark(errs.New("idempotency key must be 8-128 characters"), ErrValidation)
	}

	candidate := reservation.Reservation{
		TableIDs:   normalizeTableIDs(input.TableIDs),
		ClientName: strings.TrimSpace(input.ClientName),
		PartySize:  input.PartySize,
		Date:       input.Date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Status:     input.Status,
		Duration:   input.Duration,
		Notes:      input.Notes,
	}
	if candidate.Status == "" {
		candidate.Status = reservation.StatusPending
	}
	if err := candidate.Validate(); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	lockKeys := reservationLockKeys(candidate.Date, candidate.TableIDs)
	c.locks.LockAll(lockKeys)
	defer c.locks.UnlockAll(lockKeys)

	requestHash := fingerprint(candidate)
	if existing, err := c.replayIdempotent(ctx, idempotencyKey, requestHash); err != nil || existing != nil {
		return existing, err
	}

	now := c.clock.Now()
	if candidate.Duration > 0 {
		startsAt, err := time.ParseInLocation("2006-01-02 15:04", candidate.Date+" "+candidate.StartTime, now.Location())
		if err != nil {
			return nil, errs.Mark(err, ErrValidation)
		}
		if startsAt.Before(now) {
			return nil, ErrPastReservation
		}
	}

	dayReservations, err := c.reservations.ListByDate(ctx, candidate.Date)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	if reservation.HasTableOverlap(dayReservations, candidate.TableIDs, candidate.Date, candidate.StartTime, candidate.EndTime, "") {
		return nil, ErrTableConflict
	}

	if err := c.checkVipRules(ctx, candidate, dayReservations); err != nil {
		return nil, err
	}

	candidate.ID = uuid.NewString()
	record := IdempotencyRecord{
		Key:           idempotencyKey,
		ReservationID: candidate.ID,
		RequestHash:   requestHash,
		CreatedAt:     now,
	}
	if err := c.reservations.CreateWithIdempotency(ctx, candidate, record); err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	return &candidate, nil
}

// replayIdempotent returns the previously created reservation when the key
// was already used with the same fingerprint, or an IdempotencyReuseError
// when the payload differs. Expired records are purged and ignored.
func (c *reservationCommands) replayIdempotent(ctx context.Context, key, requestHash string) (*reservation.Reservation, error) {
	now := c.clock.Now()
	if err := c.idempotency.DeleteExpired(ctx, now.Add(-c.cfg.IdempotencyTTL)); err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	record, err := c.idempotency.Find(ctx, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	if record == nil || now.Sub(record.CreatedAt) > c.cfg.IdempotencyTTL {
		return nil, nil
	}

	if record.RequestHash != requestHash {
		return nil, &IdempotencyReuseError{Key: key, PriorReservationID: record.ReservationID}
	}

	stored, err := c.reservations.FindByID(ctx, record.ReservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return stored, nil
}

func (c *reservationCommands) checkVipRules(ctx context.Context, candidate reservation.Reservation, dayReservations []reservation.Reservation) error {
	allTables, err := c.tables.List(ctx)
	if err != nil {
		return errs.Mark(err, ErrStoreFailure)
	}
	tableByID := make(map[string]floor.Table, len(allTables))
	for _, t := range allTables {
		tableByID[t.ID] = t
	}
	isVIP := func(id string) bool { return tableByID[id].IsVIP }

	unitKey := reservation.VipUnitKey(candidate.TableIDs, isVIP)
	if unitKey == "" {
		return nil
	}

	if pairCapacity, isPair := c.mergedPairCapacity(candidate.TableIDs, tableByID); isPair && candidate.PartySize > pairCapacity {
		return &CapacityExceededError{PartySize: candidate.PartySize, Capacity: pairCapacity}
	}

	unitKeys := reservation.ListVipUnitKeys(dayReservations, isVIP, candidate.Date, candidate.StartTime, candidate.EndTime, "")
	if !containsKey(unitKeys, unitKey) {
		unitKeys = append(unitKeys, unitKey)
	}
	if len(unitKeys) > c.cfg.VipUnitCap {
		return &VipUnitLimitError{Cap: c.cfg.VipUnitCap, UnitKeys: unitKeys}
	}
	return nil
}

// mergedPairCapacity reports the combined capacity cap when the candidate's
// VIP tables are exactly a mergeable pair sharing a merge group.
func (c *reservationCommands) mergedPairCapacity(tableIDs []string, tableByID map[string]floor.Table) (int, bool) {
	vips := make([]floor.Table, 0, len(tableIDs))
	for _, id := range tableIDs {
		if t, ok := tableByID[id]; ok && t.IsVIP {
			vips = append(vips, t)
		}
	}
	if len(vips) != 2 {
		return 0, false
	}
	a, b := vips[0], vips[1]
	if !a.CanMerge || !b.CanMerge || a.MergeGroup == nil || b.MergeGroup == nil || *a.MergeGroup != *b.MergeGroup {
		return 0, false
	}
	return c.cfg.VipPairCapacity, true
}

// CreateWalkIn seats a guest without a prior booking: duration 0 sentinel,
// window from the current minute to end of service.
func (c *reservationCommands) CreateWalkIn(ctx context.Context, input CreateWalkInInput) (*reservation.Reservation, error) {
	if input.TableID == "" {
		return nil, errs.Mark(errs.New("tableId is required"), ErrValidation)
	}
	if input.PartySize < 0 {
		return nil, errs.Mark(reservation.ErrInvalidPartySize, ErrValidation)
	}

	table, err := c.tables.FindByID(ctx, input.TableID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	now := c.clock.Now()
	startTime := clock.MinuteString(now)
	if startTime >= reservation.DayEnd {
		// keep start < end when seated in the last minute of the day
		startTime = "23:58"
	}

	clientName := strings.TrimSpace(input.ClientName)
	if clientName == "" {
		clientName = "Walk-in"
	}
	partySize := input.PartySize
	if partySize == 0 {
		partySize = 1
	}

	candidate := reservation.Reservation{
		TableIDs:   []string{table.ID},
		ClientName: clientName,
		PartySize:  partySize,
		Date:       clock.DateString(now),
		StartTime:  startTime,
		EndTime:    reservation.DayEnd,
		Status:     reservation.StatusConfirmed,
		Duration:   reservation.WalkInDuration,
		Notes:      input.Notes,
	}
	if err := candidate.Validate(); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	lockKeys := reservationLockKeys(candidate.Date, candidate.TableIDs)
	c.locks.LockAll(lockKeys)
	defer c.locks.UnlockAll(lockKeys)

	dayReservations, err := c.reservations.ListByDate(ctx, candidate.Date)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	if reservation.HasTableOverlap(dayReservations, candidate.TableIDs, candidate.Date, candidate.StartTime, candidate.EndTime, "") {
		return nil, ErrTableConflict
	}

	candidate.ID = uuid.NewString()
	if err := c.reservations.Create(ctx, candidate); err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return &candidate, nil
}

// UpdateStatus applies the reservation status machine. A same-status request
// is a no-op and returns the reservation unchanged.
func (c *reservationCommands) UpdateStatus(ctx context.Context, id string, next reservation.Status) (*reservation.Reservation, error) {
	if !next.IsValid() {
		return nil, errs.Mark(reservation.ErrInvalidStatus, ErrValidation)
	}

	current, err := c.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	if current.Status == next {
		return current, nil
	}
	if !reservation.CanTransition(current.Status, next) {
		return nil, &InvalidTransitionError{Current: current.Status, Requested: next}
	}

	updated, err := c.reservations.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return updated, nil
}

// ReleaseTable closes today's active reservation on a table, if any.
// Confirmed bookings complete; pending ones cancel (the machine has no
// pending-to-completed edge).
func (c *reservationCommands) ReleaseTable(ctx context.Context, tableID string) (*reservation.Reservation, bool, error) {
	if _, err := c.tables.FindByID(ctx, tableID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, false, ErrTableNotFound
		}
		return nil, false, errs.Mark(err, ErrStoreFailure)
	}

	today := clock.DateString(c.clock.Now())
	dayReservations, err := c.reservations.ListByDate(ctx, today)
	if err != nil {
		return nil, false, errs.Mark(err, ErrStoreFailure)
	}

	for _, r := range dayReservations {
		if !r.Status.IsActive() || !r.ReferencesTable(tableID) {
			continue
		}
		next := reservation.StatusCompleted
		if r.Status == reservation.StatusPending {
			next = reservation.StatusCancelled
		}
		updated, err := c.reservations.UpdateStatus(ctx, r.ID, next)
		if err != nil {
			return nil, false, errs.Mark(err, ErrStoreFailure)
		}
		return updated, true, nil
	}

	return nil, false, nil
}

func normalizeTableIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func reservationLockKeys(date string, tableIDs []string) []string {
	keys := make([]string, 0, len(tableIDs))
	for _, id := range tableIDs {
		keys = append(keys, "res:"+date+":"+id)
	}
	return keys
}

// fingerprint hashes the normalized create payload; identical retries map to
// the same digest regardless of table id ordering.
func fingerprint(r reservation.Reservation) string {
	normalized := r
	normalized.ID = ""
	normalized.TableIDs = append([]string(nil), r.TableIDs...)
	sort.Strings(normalized.TableIDs)

	data, _ := json.Marshal(normalized)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
