package commands

import (
	"fmt"
	"strings"
	"time"

	"tablero/internal/domain/reservation"
	"tablero/internal/pkg/errs"
)

var (
	ErrValidation          = errs.New("validation error")
	ErrPastReservation     = errs.New("reservation start is in the past")
	ErrTableConflict       = errs.New("table already reserved in that window")
	ErrAreaNotFound        = errs.New("area not found")
	ErrTableNotFound       = errs.New("table not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrAreaFull            = errs.New("area has reached its table limit")
	ErrResetUnsupported    = errs.New("reset is only supported by the memory store")
	ErrStoreFailure        = errs.New("store operation failed")
)

// VipUnitLimitError reports a breach of the simultaneous VIP functional-unit
// cap, carrying the offending unit keys for diagnostics.
type VipUnitLimitError struct {
	Cap      int
	UnitKeys []string
}

func (e *VipUnitLimitError) Error() string {
	return fmt.Sprintf("vip functional unit limit exceeded: cap %d, units [%s]", e.Cap, strings.Join(e.UnitKeys, " "))
}

// CapacityExceededError reports a party too large for the merged VIP pair.
type CapacityExceededError struct {
	PartySize int
	Capacity  int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("party size %d exceeds merged pair capacity %d", e.PartySize, e.Capacity)
}

// IdempotencyReuseError reports an idempotency key replayed with a different
// payload, exposing the reservation created by the first request.
type IdempotencyReuseError struct {
	Key                string
	PriorReservationID string
}

func (e *IdempotencyReuseError) Error() string {
	return fmt.Sprintf("idempotency key %s already used for reservation %s with a different payload", e.Key, e.PriorReservationID)
}

// InvalidTransitionError reports a status change the machine does not allow.
type InvalidTransitionError struct {
	Current   reservation.Status
	Requested reservation.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition reservation from %s to %s", e.Current, e.Requested)
}

// ConcurrencyConflictError reports a stale expectedVersion on a position
// update.
type ConcurrencyConflictError struct {
	TableID         string
	ExpectedVersion int
	CurrentVersion  int
	UpdatedAt       time.Time
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("table %s version conflict: expected %d, current %d", e.TableID, e.ExpectedVersion, e.CurrentVersion)
}
