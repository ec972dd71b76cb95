package floor

// ZoneInset is the non-droppable margin of an area canvas, in percent of
// each dimension. Tables are clamped inside it so their visual never
// overlaps the area boundary.
type ZoneInset struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

var DefaultZoneInset = ZoneInset{Top: 10, Right: 8, Bottom: 12, Left: 8}

var zoneInsetByAreaID = map[string]ZoneInset{
	"area-terraza": {Top: 7, Right: 7, Bottom: 12, Left: 7},
	"area-patio":   {Top: 10, Right: 9, Bottom: 13, Left: 9},
	"area-lobby":   {Top: 11, Right: 11, Bottom: 14, Left: 11},
	"area-bar":     {Top: 12, Right: 10, Bottom: 15, Left: 10},
	"area-vip":     {Top: 9, Right: 14, Bottom: 13, Left: 14},
}

// InsetForArea returns the configured inset for an area, or the default for
// unknown or empty ids.
func InsetForArea(areaID string) ZoneInset {
	if inset, ok := zoneInsetByAreaID[areaID]; ok {
		return inset
	}
	return DefaultZoneInset
}

const rootRemPx = 16

// ClampRequest carries a requested table position and the canvas geometry
// it was dragged on.
type ClampRequest struct {
	TableType    TableType
	Capacity     int
	AreaID       string
	X            float64
	Y            float64
	CanvasWidth  float64
	CanvasHeight float64
	IsMergedView bool
}

// ClampPosition confines a requested (x, y) to the area's inset zone,
// accounting for the table footprint so the table stays fully inside:
// x in [insetLeft, 100-insetRight-widthPct], y analogous. A degenerate
// canvas where max < min collapses to min.
func ClampPosition(req ClampRequest) (x, y float64) {
	inset := InsetForArea(req.AreaID)
	dims := TableDimensions(req.TableType, req.Capacity, req.IsMergedView)

	safeWidth := req.CanvasWidth
	if safeWidth < 1 {
		safeWidth = 1
	}
	safeHeight := req.CanvasHeight
	if safeHeight < 1 {
		safeHeight = 1
	}

	widthPct := dims.WidthRem * rootRemPx / safeWidth * 100
	heightPct := dims.HeightRem * rootRemPx / safeHeight * 100

	x = clampToRange(req.X, inset.Left, 100-inset.Right-widthPct)
	y = clampToRange(req.Y, inset.Top, 100-inset.Bottom-heightPct)
	return x, y
}

func clampToRange(value, min, max float64) float64 {
	if max <= min {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
