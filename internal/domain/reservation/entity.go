package reservation

import (
	"errors"
	"regexp"
)

var (
	ErrEmptyTableIDs    = errors.New("reservation must reference at least one table")
	ErrEmptyClientName  = errors.New("client name is required")
	ErrInvalidPartySize = errors.New("party size must be positive")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime      = errors.New("time must be HH:mm")
	ErrInvalidWindow    = errors.New("start time must be before end time")
	ErrInvalidStatus    = errors.New("invalid reservation status")
	ErrNegativeDuration = errors.New("duration cannot be negative")
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// WalkInDuration is the sentinel duration of a walk-in: no timer, the table
// is simply occupied until released.
const WalkInDuration = 0

// DayEnd is the end-of-service sentinel used as the walk-in end time.
const DayEnd = "23:59"

// Reservation is a booking of one or more tables for a same-day time window.
// Multiple table ids represent a merged (VIP-combined) booking.
type Reservation struct {
	ID         string   `json:"id"`
	TableIDs   []string `json:"tableIds"`
	ClientName string   `json:"clientName"`
	PartySize  int      `json:"partySize"`
	Date       string   `json:"date"`      // YYYY-MM-DD
	StartTime  string   `json:"startTime"` // HH:mm
	EndTime    string   `json:"endTime"`   // HH:mm, same day
	Status     Status   `json:"status"`
	Duration   int      `json:"duration"` // minutes; 0 = walk-in sentinel
	Notes      string   `json:"notes"`
}

// Validate checks structural invariants only; time-window conflicts and VIP
// rules are collection-level checks applied by the creator.
func (r Reservation) Validate() error {
	if len(r.TableIDs) == 0 {
		return ErrEmptyTableIDs
	}
	for _, id := range r.TableIDs {
		if id == "" {
			return ErrEmptyTableIDs
		}
	}
	if r.ClientName == "" {
		return ErrEmptyClientName
	}
	if r.PartySize <= 0 {
		return ErrInvalidPartySize
	}
	if !dateRe.MatchString(r.Date) {
		return ErrInvalidDate
	}
	if !timeRe.MatchString(r.StartTime) || !timeRe.MatchString(r.EndTime) {
		return ErrInvalidTime
	}
	if r.StartTime >= r.EndTime {
		return ErrInvalidWindow
	}
	if !r.Status.IsValid() {
		return ErrInvalidStatus
	}
	if r.Duration < 0 {
		return ErrNegativeDuration
	}
	return nil
}

func (r Reservation) IsWalkIn() bool {
	return r.Duration == WalkInDuration
}

// ReferencesTable reports whether the reservation includes the given table.
func (r Reservation) ReferencesTable(tableID string) bool {
	for _, id := range r.TableIDs {
		if id == tableID {
			return true
		}
	}
	return false
}

func (r Reservation) sharesTable(tableIDs []string) bool {
	for _, id := range tableIDs {
		if r.ReferencesTable(id) {
			return true
		}
	}
	return false
}
