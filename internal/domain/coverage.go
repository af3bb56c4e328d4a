package domain

import (
	"fmt"
	"sort"
)

// WorkSlot is one planned or reassignment-away interval attributed to an
// employee on a date. Overlapping slots for the same employee are merged for
// coverage arithmetic but kept apart for conflict detection.
type WorkSlot struct {
	WorkCode string   `bson:"workCode" json:"workCode"`
	Interval Interval `bson:"interval" json:"interval"`
}

// MergeSlots collapses overlapping and adjacent slots into covering
// intervals. Slots are sorted by start and walked once; a slot whose start
// falls at or before the previous merged end extends it. The work code of a
// merged slot is that of its earliest member and is informational only.
func MergeSlots(slots []WorkSlot) []WorkSlot {
	if len(slots) == 0 {
		return nil
	}

	sorted := make([]WorkSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Interval.From < sorted[j].Interval.From
	})

	merged := make([]WorkSlot, 0, len(sorted))
	cur := sorted[0]
	_, curEnd := cur.Interval.normalized()

	for _, slot := range sorted[1:] {
		start, end := slot.Interval.normalized()
		if start <= curEnd {
			if end > curEnd {
				curEnd = end
				cur.Interval.To = slot.Interval.To
			}
			continue
		}
		merged = append(merged, cur)
		cur = slot
		curEnd = end
	}
	merged = append(merged, cur)
	return merged
}

// TotalCoveredMinutes sums the durations of the merged form of slots.
func TotalCoveredMinutes(slots []WorkSlot) int {
	total := 0
	for _, slot := range MergeSlots(slots) {
		total += slot.Interval.Minutes()
	}
	return total
}

// CoverageResult reports how much of a shift's span is accounted for.
type CoverageResult struct {
	RequiredMinutes  int `json:"requiredMinutes"`
	CoveredMinutes   int `json:"coveredMinutes"`
	ShortfallMinutes int `json:"shortfallMinutes"`
}

// Covered reports whether the full shift span is accounted for.
func (r CoverageResult) Covered() bool {
	return r.ShortfallMinutes == 0
}

// ValidateShiftCoverage checks that planned work plus reassignment-away time
// accounts for the entire shift span. The requirement is break-inclusive:
// break time is neither planned work nor away time, so it is implicitly
// covered once start-to-end is accounted for. Covered minutes are raw, never
// break-adjusted.
func ValidateShiftCoverage(shift ShiftDefinition, planned, reassignedAway []WorkSlot) CoverageResult {
	required := shift.Minutes()
	covered := TotalCoveredMinutes(planned) + TotalCoveredMinutes(reassignedAway)

	shortfall := required - covered
	if shortfall < 0 {
		shortfall = 0
	}

	return CoverageResult{
		RequiredMinutes:  required,
		CoveredMinutes:   covered,
		ShortfallMinutes: shortfall,
	}
}

// DetectOverlap finds pairs of slots for one worker that strictly overlap.
// An exact boundary touch is adjacency, not a conflict. The reported conflict
// is identical regardless of input order.
func DetectOverlap(slots []WorkSlot) []Finding {
	if len(slots) < 2 {
		return nil
	}

	sorted := make([]WorkSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Interval.From != sorted[j].Interval.From {
			return sorted[i].Interval.From < sorted[j].Interval.From
		}
		return sorted[i].WorkCode < sorted[j].WorkCode
	})

	var findings []Finding
	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		_, prevEnd := prev.Interval.normalized()
		nextStart, _ := next.Interval.normalized()
		if nextStart < prevEnd {
			findings = append(findings, Finding{
				Code: FindingOverlappingPlans,
				Message: fmt.Sprintf("work %s (%s) overlaps work %s (%s); a worker cannot be engaged in two works at once",
					prev.WorkCode, prev.Interval, next.WorkCode, next.Interval),
				FirstWork:  prev.WorkCode,
				SecondWork: next.WorkCode,
			})
		}
	}
	return findings
}

// ValidateReassignmentCoverage requires each interval reassigned into this
// stage to overlap at least one planned work interval; a reassigned worker
// with no work planned for the period is flagged.
func ValidateReassignmentCoverage(reassignedInto []WorkSlot, planned []WorkSlot) []Finding {
	var findings []Finding
	for _, re := range reassignedInto {
		reStart, reEnd := re.Interval.normalized()
		matched := false
		for _, plan := range planned {
			planStart, planEnd := plan.Interval.normalized()
			if OverlapMinutes(reStart, reEnd, planStart, planEnd) > 0 {
				matched = true
				break
			}
		}
		if !matched {
			findings = append(findings, Finding{
				Code:      FindingReassignmentUnplanned,
				Message:   fmt.Sprintf("reassigned for %s but no work planned for this period", re.Interval),
				FirstWork: re.WorkCode,
			})
		}
	}
	return findings
}
