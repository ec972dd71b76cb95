package floor

// Dimensions is the on-screen footprint of a table in rem units. The canvas
// clamping math converts these against the root font size.
type Dimensions struct {
	WidthRem  float64
	HeightRem float64
}

// TableDimensions returns the footprint for a table's type and capacity.
// A merged pair rendered as one unit gets the wide combined footprint.
func TableDimensions(tableType TableType, capacity int, isMergedView bool) Dimensions {
	if tableType == TableCircular {
		return Dimensions{WidthRem: 14, HeightRem: 14}
	}

	if isMergedView {
		return Dimensions{WidthRem: 22, HeightRem: 10}
	}

	switch capacity {
	case 2:
		return Dimensions{WidthRem: 8, HeightRem: 8}
	case 4:
		return Dimensions{WidthRem: 12, HeightRem: 8}
	case 6:
		return Dimensions{WidthRem: 14, HeightRem: 10}
	case 8:
		return Dimensions{WidthRem: 16, HeightRem: 10}
	case 10:
		return Dimensions{WidthRem: 14, HeightRem: 14}
	default:
		return Dimensions{WidthRem: 10, HeightRem: 8}
	}
}
