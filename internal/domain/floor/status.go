package floor

import (
	"time"

	"tablero/internal/domain/reservation"
	"tablero/internal/pkg/clock"
)

// Projection is the derived display state of a table plus the reservation
// that produced it (shown by the UI as the countdown source).
type Projection struct {
	Status      VisualStatus
	Reservation *reservation.Reservation
}

// ProjectVisualStatus derives a table's display status from the reservation
// collection at the reference instant. Candidates are scanned in input
// order and the first match wins; no additional sorting is applied.
func ProjectVisualStatus(table Table, reservations []reservation.Reservation, now time.Time) Projection {
	today := clock.DateString(now)
	nowClock := clock.MinuteString(now)

	for i := range reservations {
		res := reservations[i]
		if res.Date != today {
			continue
		}
		if !res.Status.IsActive() {
			continue
		}
		if !res.ReferencesTable(table.ID) {
			continue
		}

		// Walk-in sentinel: occupied with no timer.
		if res.IsWalkIn() {
			return Projection{Status: StatusOccupied, Reservation: &res}
		}

		if res.StartTime <= nowClock && res.EndTime > nowClock {
			if table.IsVIP && len(res.TableIDs) > 1 {
				return Projection{Status: StatusVipCombined, Reservation: &res}
			}
			return Projection{Status: StatusReservedActive, Reservation: &res}
		}

		if res.StartTime > nowClock {
			return Projection{Status: StatusReservedFuture, Reservation: &res}
		}
	}

	return Projection{Status: StatusAvailable}
}
