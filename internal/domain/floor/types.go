package floor

import "time"

// Area is immutable reference data: a named zone of the floor with a table
// capacity limit.
type Area struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MaxTables int    `json:"maxTables"`
}

type TableType string

const (
	TableStandard TableType = "standard"
	TableCircular TableType = "circular"
	TableSquare   TableType = "square"
)

func (t TableType) IsValid() bool {
	switch t {
	case TableStandard, TableCircular, TableSquare:
		return true
	default:
		return false
	}
}

// Table is a positioned table on the floor canvas. X and Y are percentage
// coordinates of the area canvas (0-100). Version increments on every
// position update and backs optimistic concurrency control.
type Table struct {
	ID         string    `json:"id"`
	AreaID     string    `json:"areaId"`
	Capacity   int       `json:"capacity"`
	Type       TableType `json:"type"`
	Name       string    `json:"name"`
	IsVIP      bool      `json:"isVIP"`
	CanMerge   bool      `json:"canMerge"`
	MergeGroup *string   `json:"mergeGroup"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Version    int       `json:"version"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// VisualStatus is the display state of a table derived from the day's
// reservations at a reference instant.
type VisualStatus string

const (
	StatusAvailable      VisualStatus = "available"
	StatusOccupied       VisualStatus = "occupied"
	StatusReservedActive VisualStatus = "reserved_active"
	StatusReservedFuture VisualStatus = "reserved_future"
	StatusVipCombined    VisualStatus = "vip_combined"
)
