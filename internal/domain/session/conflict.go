package session

import "time"

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Exactly abutting intervals do not overlap, so a
// session ending at 11:00 never conflicts with one starting at 11:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflict returns the first non-cancelled session whose interval overlaps
// [start,end), skipping excludeID (the session being rescheduled). First match
// wins; callers only need a yes/no signal.
func FindConflict(existing []Session, start, end time.Time, excludeID string) *Session {
	for i := range existing {
		s := &existing[i]
		if s.Canceled || s.ID == excludeID {
			continue
		}
		if Overlaps(start, end, s.Start, s.End) {
			return s
		}
	}
	return nil
}
