package reservation

import (
	"sort"
	"strings"
)

// VipUnitKey derives the functional-unit key of a reservation: the sorted,
// comma-joined set of VIP table ids it references. A merged pair booked
// together forms one unit distinct from either table booked alone. Returns
// "" when the reservation touches no VIP table.
func VipUnitKey(tableIDs []string, isVIP func(tableID string) bool) string {
	vipIDs := make([]string, 0, len(tableIDs))
	for _, id := range tableIDs {
		if isVIP(id) {
			vipIDs = append(vipIDs, id)
		}
	}
	if len(vipIDs) == 0 {
		return ""
	}
	sort.Strings(vipIDs)
	return strings.Join(vipIDs, ",")
}

// ListVipUnitKeys enumerates the distinct functional-unit keys of all active
// reservations overlapping the candidate window on the given date. The
// result is sorted for stable diagnostics.
func ListVipUnitKeys(reservations []Reservation, isVIP func(tableID string) bool, date, startTime, endTime, excludeID string) []string {
	seen := make(map[string]struct{})
	for _, r := range reservations {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if r.Date != date {
			continue
		}
		if !r.Status.IsActive() {
			continue
		}
		if !Overlaps(r.StartTime, r.EndTime, startTime, endTime) {
			continue
		}
		key := VipUnitKey(r.TableIDs, isVIP)
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
