package reservation

// Overlaps reports whether [startA,endA) intersects [startB,endB).
// Times are zero-padded HH:mm strings, so lexicographic comparison matches
// numeric-minute comparison. Half-open: a window ending exactly when the
// other begins does not overlap.
func Overlaps(startA, endA, startB, endB string) bool {
	return startA < endB && endA > startB
}

// WindowMinutes returns the length of [start,end) in minutes, or 0 when
// either value is not a well-formed HH:mm string.
func WindowMinutes(start, end string) int {
	s, okS := parseMinutes(start)
	e, okE := parseMinutes(end)
	if !okS || !okE || e < s {
		return 0
	}
	return e - s
}

func parseMinutes(hhmm string) (int, bool) {
	if !timeRe.MatchString(hhmm) {
		return 0, false
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	return h*60 + m, true
}

// HasTableOverlap reports whether any active (pending or confirmed)
// reservation on the same date shares a table with tableIDs and intersects
// the candidate window. excludeID lets an update skip comparing against
// itself; pass "" when creating.
func HasTableOverlap(reservations []Reservation, tableIDs []string, date, startTime, endTime, excludeID string) bool {
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
		if !r.sharesTable(tableIDs) {
			continue
		}
		if Overlaps(r.StartTime, r.EndTime, startTime, endTime) {
			return true
		}
	}
	return false
}
