package queries

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tablero/internal/domain/floor"
	"tablero/internal/domain/reservation"
	"tablero/internal/pkg/clock"
	"tablero/internal/pkg/config"
	"tablero/internal/pkg/errs"
	"tablero/internal/usecase/commands"
)

var (
	ErrInvalidStartTime = errs.New("startTime must be HH:mm")
	ErrInvalidPartySize = errs.New("partySize must be positive")
)

type TableSuggestion struct {
	TableIDs  []string `json:"tableIds"`
	Capacity  int      `json:"capacity"`
	TableName string   `json:"tableName"`
}

type Availability struct {
	SuggestedTables []TableSuggestion `json:"suggestedTables"`
	Alternatives    []TableSuggestion `json:"alternatives"`
}

// TableView is a table enriched with its derived visual status and the
// reservation that produced it.
type TableView struct {
	floor.Table
	VisualStatus floor.VisualStatus       `json:"visualStatus"`
	Reservation  *reservation.Reservation `json:"reservation,omitempty"`
}

type FloorLayout struct {
	Date         string                    `json:"date"`
	AreaID       *string                   `json:"areaId"`
	Areas        []floor.Area              `json:"areas"`
	Tables       []TableView               `json:"tables"`
	Reservations []reservation.Reservation `json:"reservations"`
}

type FloorQueries interface {
	ListAreas(ctx context.Context) ([]floor.Area, error)
	ListTables(ctx context.Context, areaID string) ([]floor.Table, error)
	ListReservations(ctx context.Context, date, areaID string) ([]reservation.Reservation, error)
	GetAvailability(ctx context.Context, date string, partySize int, startTime, areaPreference string) (*Availability, error)
	GetFloorLayout(ctx context.Context, date, areaID string) (*FloorLayout, error)
}

type floorQueries struct {
	areas        commands.AreaRepository
	tables       commands.TableRepository
	reservations commands.ReservationRepository
	clock        clock.Clock
	cfg          config.FloorConfig
}

func NewFloorQueries(
	areas commands.AreaRepository,
	tables commands.TableRepository,
	reservations commands.ReservationRepository,
	clk clock.Clock,
	cfg config.FloorConfig,
) FloorQueries {
	return &floorQueries{
		areas:        areas,
		tables:       tables,
		reservations: reservations,
		clock:        clk,
		cfg:          cfg,
	}
}

func (q *floorQueries) ListAreas(ctx context.Context) ([]floor.Area, error) {
	return q.areas.List(ctx)
}

func (q *floorQueries) ListTables(ctx context.Context, areaID string) ([]floor.Table, error) {
	if areaID == "" {
		return q.tables.List(ctx)
	}
	return q.tables.ListByArea(ctx, areaID)
}

// ListReservations returns the date's reservations, optionally narrowed to
// those touching a table in the given area.
func (q *floorQueries) ListReservations(ctx context.Context, date, areaID string) ([]reservation.Reservation, error) {
	if date == "" {
		date = clock.DateString(q.clock.Now())
	}

	reservations, err := q.reservations.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if areaID == "" {
		return reservations, nil
	}

	areaTables, err := q.tables.ListByArea(ctx, areaID)
	if err != nil {
		return nil, err
	}
	inArea := make(map[string]struct{}, len(areaTables))
	for _, t := range areaTables {
		inArea[t.ID] = struct{}{}
	}

	filtered := make([]reservation.Reservation, 0, len(reservations))
	for _, r := range reservations {
		for _, id := range r.TableIDs {
			if _, ok := inArea[id]; ok {
				filtered = append(filtered, r)
				break
			}
		}
	}
	return filtered, nil
}

// GetAvailability searches tables that can seat the party in a default
// 90-minute window from startTime, sorted by capacity ascending and split
// into the top 3 suggestions and the next 3 alternatives.
func (q *floorQueries) GetAvailability(ctx context.Context, date string, partySize int, startTime, areaPreference string) (*Availability, error) {
	if date == "" {
		date = clock.DateString(q.clock.Now())
	}
	if !strings.Contains(startTime, ":") {
		return nil, ErrInvalidStartTime
	}
	if partySize <= 0 {
		return nil, ErrInvalidPartySize
	}

	endTime, err := addMinutes(startTime, q.cfg.DefaultDurationMin)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStartTime)
	}

	tables, err := q.ListTables(ctx, areaPreference)
	if err != nil {
		return nil, err
	}
	reservations, err := q.reservations.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	available := make([]floor.Table, 0, len(tables))
	for _, t := range tables {
		if t.Capacity < partySize {
			continue
		}
		if reservation.HasTableOverlap(reservations, []string{t.ID}, date, startTime, endTime, "") {
			continue
		}
		available = append(available, t)
	}
	sort.SliceStable(available, func(i, j int) bool {
		return available[i].Capacity < available[j].Capacity
	})

	toSuggestion := func(t floor.Table) TableSuggestion {
		return TableSuggestion{TableIDs: []string{t.ID}, Capacity: t.Capacity, TableName: t.Name}
	}
	result := &Availability{
		SuggestedTables: []TableSuggestion{},
		Alternatives:    []TableSuggestion{},
	}
	for i, t := range available {
		switch {
		case i < 3:
			result.SuggestedTables = append(result.SuggestedTables, toSuggestion(t))
		case i < 6:
			result.Alternatives = append(result.Alternatives, toSuggestion(t))
		}
	}
	return result, nil
}

// GetFloorLayout assembles the combined snapshot the canvas renders: areas,
// tables with projected visual status, and the date's reservations.
func (q *floorQueries) GetFloorLayout(ctx context.Context, date, areaID string) (*FloorLayout, error) {
	if date == "" {
		date = clock.DateString(q.clock.Now())
	}

	areas, err := q.areas.List(ctx)
	if err != nil {
		return nil, err
	}
	tables, err := q.ListTables(ctx, areaID)
	if err != nil {
		return nil, err
	}
	reservations, err := q.ListReservations(ctx, date, areaID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	views := make([]TableView, len(tables))
	for i, t := range tables {
		projection := floor.ProjectVisualStatus(t, reservations, now)
		views[i] = TableView{
			Table:        t,
			VisualStatus: projection.Status,
			Reservation:  projection.Reservation,
		}
	}

	layout := &FloorLayout{
		Date:         date,
		Areas:        areas,
		Tables:       views,
		Reservations: reservations,
	}
	if areaID != "" {
		layout.AreaID = &areaID
	}
	return layout, nil
}

// addMinutes advances an HH:mm clock value, clamping at end of day.
func addMinutes(hhmm string, minutes int) (string, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return "", errs.Newf("malformed time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return "", errs.Newf("time out of range %q", hhmm)
	}

	total := h*60 + m + minutes
	if total > 23*60+59 {
		total = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}
