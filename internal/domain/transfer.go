package domain

import (
	"sort"
	"time"
)

// ReassignmentEvent is one entry in an employee's intra-day reassignment
// journal: a temporary move between stages for a sub-interval of the shift.
type ReassignmentEvent struct {
	FromStage  string    `bson:"fromStage" json:"fromStage"`
	ToStage    string    `bson:"toStage" json:"toStage"`
	Interval   Interval  `bson:"interval" json:"interval"`
	OccurredAt time.Time `bson:"occurredAt" json:"occurredAt"`
}

// CurrentStage derives the employee's present stage from the reassignment
// journal: the destination of the chronologically last event, or the home
// stage when the journal is empty.
func CurrentStage(homeStage string, journal []ReassignmentEvent) string {
	if len(journal) == 0 {
		return homeStage
	}

	sorted := make([]ReassignmentEvent, len(journal))
	copy(sorted, journal)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
	})

	return sorted[len(sorted)-1].ToStage
}

// TransferMinutes totals the journal's movement relative to a reference
// stage: minutes moved away to other stages and minutes brought in from
// them. Events that never touch the reference stage, or that name it on both
// sides, contribute to neither bucket.
func TransferMinutes(journal []ReassignmentEvent, referenceStage string) (toOther, fromOther int) {
	for _, ev := range journal {
		minutes := ev.Interval.Minutes()
		switch {
		case ev.FromStage == referenceStage && ev.ToStage != referenceStage:
			toOther += minutes
		case ev.ToStage == referenceStage && ev.FromStage != referenceStage:
			fromOther += minutes
		}
	}
	return toOther, fromOther
}

// TransferSlots splits a journal into the intervals moved away from the
// reference stage and those brought into it, as work slots for coverage
// checks. Events that never touch the reference stage, or that name it on
// both sides, land in neither list.
func TransferSlots(journal []ReassignmentEvent, referenceStage string) (away, into []WorkSlot) {
	for _, ev := range journal {
		slot := WorkSlot{Interval: ev.Interval}
		switch {
		case ev.FromStage == referenceStage && ev.ToStage != referenceStage:
			away = append(away, slot)
		case ev.ToStage == referenceStage && ev.FromStage != referenceStage:
			into = append(into, slot)
		}
	}
	return away, into
}
