package domain

// BreakWindow is a configured rest period within a shift. It may itself cross
// midnight on night shifts.
type BreakWindow = Interval

// ShiftDefinition describes one shift's working span and its configured break
// windows.
type ShiftDefinition struct {
	ShiftCode    string        `bson:"shiftCode" json:"shiftCode"`
	StartTime    TimeOfDay     `bson:"startTime" json:"startTime"`
	EndTime      TimeOfDay     `bson:"endTime" json:"endTime"`
	BreakWindows []BreakWindow `bson:"breakWindows" json:"breakWindows"`
}

// Minutes returns the full shift span, never break-adjusted.
func (s ShiftDefinition) Minutes() int {
	return Duration(s.StartTime, s.EndTime)
}

// Span returns the shift as an interval.
func (s ShiftDefinition) Span() Interval {
	return Interval{From: s.StartTime, To: s.EndTime}
}

// BreakOverlapMinutes computes how many minutes of a work interval fall
// inside the given break windows. Each window is normalized to the work
// interval's day-relative frame and its overlap summed. Windows are assumed
// disjoint; overlap double-counted by windows that themselves overlap is not
// deduplicated.
func BreakOverlapMinutes(work Interval, windows []BreakWindow) int {
	workStart, workEnd := work.normalized()

	total := 0
	for _, w := range windows {
		brStart, brEnd := w.normalized()

		overlap := OverlapMinutes(workStart, workEnd, brStart, brEnd)
		if workEnd > minutesPerDay {
			// The work interval runs past midnight; a window on the far side
			// of it sits a day later on the shared frame.
			shifted := OverlapMinutes(workStart, workEnd, brStart+minutesPerDay, brEnd+minutesPerDay)
			overlap = max(overlap, shifted)
		}
		total += overlap
	}
	return total
}

// BreakAdjustedMinutes returns the interval length with break overlap
// deducted. Used for displayed work figures only; coverage validation uses
// raw minutes.
func BreakAdjustedMinutes(work Interval, windows []BreakWindow) int {
	return work.Minutes() - BreakOverlapMinutes(work, windows)
}
