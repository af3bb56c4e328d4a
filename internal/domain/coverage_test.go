package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(t *testing.T, workCode, from, to string) WorkSlot {
	t.Helper()
	return WorkSlot{WorkCode: workCode, Interval: mustInterval(t, from, to)}
}

// TestMergeSlots tests overlap and adjacency collapsing
func TestMergeSlots(t *testing.T) {
	tests := []struct {
		name     string
		slots    []WorkSlot
		expected []Interval
	}{
		{
			name:     "Empty input",
			slots:    nil,
			expected: nil,
		},
		{
			name:     "Single slot",
			slots:    []WorkSlot{slot(t, "W1", "09:00", "11:00")},
			expected: []Interval{{From: 540, To: 660}},
		},
		{
			name: "Overlapping slots collapse",
			slots: []WorkSlot{
				slot(t, "W1", "09:00", "11:00"),
				slot(t, "W2", "10:30", "12:00"),
			},
			expected: []Interval{{From: 540, To: 720}},
		},
		{
			name: "Adjacent slots collapse",
			slots: []WorkSlot{
				slot(t, "W1", "09:00", "11:00"),
				slot(t, "W2", "11:00", "12:00"),
			},
			expected: []Interval{{From: 540, To: 720}},
		},
		{
			name: "Disjoint slots stay apart",
			slots: []WorkSlot{
				slot(t, "W1", "09:00", "10:00"),
				slot(t, "W2", "11:00", "12:00"),
			},
			expected: []Interval{{From: 540, To: 600}, {From: 660, To: 720}},
		},
		{
			name: "Contained slot disappears",
			slots: []WorkSlot{
				slot(t, "W1", "09:00", "13:00"),
				slot(t, "W2", "10:00", "11:00"),
			},
			expected: []Interval{{From: 540, To: 780}},
		},
		{
			name: "Unsorted input",
			slots: []WorkSlot{
				slot(t, "W2", "11:00", "12:00"),
				slot(t, "W1", "09:00", "11:30"),
			},
			expected: []Interval{{From: 540, To: 720}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeSlots(tt.slots)
			require.Len(t, merged, len(tt.expected))
			for i, iv := range tt.expected {
				assert.Equal(t, iv, merged[i].Interval)
			}
		})
	}
}

// TestMergeSlotsIdempotence verifies merging a merged set changes nothing
func TestMergeSlotsIdempotence(t *testing.T) {
	slots := []WorkSlot{
		slot(t, "W1", "09:00", "11:00"),
		slot(t, "W2", "10:30", "12:00"),
		slot(t, "W3", "14:00", "15:00"),
	}

	once := MergeSlots(slots)
	twice := MergeSlots(once)
	assert.Equal(t, once, twice)
}

// TestValidateShiftCoverage tests the break-inclusive coverage comparison
func TestValidateShiftCoverage(t *testing.T) {
	shift := ShiftDefinition{
		ShiftCode:    "GEN",
		StartTime:    480,  // 08:00
		EndTime:      1020, // 17:00
		BreakWindows: []BreakWindow{{From: 720, To: 750}},
	}

	tests := []struct {
		name       string
		planned    []WorkSlot
		reassigned []WorkSlot
		covered    int
		shortfall  int
	}{
		{
			name:      "Full day planned covers the whole shift",
			planned:   []WorkSlot{slot(t, "W1", "08:00", "17:00")},
			covered:   540,
			shortfall: 0,
		},
		{
			name:      "Morning only leaves a shortfall",
			planned:   []WorkSlot{slot(t, "W1", "08:00", "12:00")},
			covered:   240,
			shortfall: 300,
		},
		{
			name:       "Planned work plus reassigned-away time",
			planned:    []WorkSlot{slot(t, "W1", "08:00", "12:00")},
			reassigned: []WorkSlot{slot(t, "", "12:00", "17:00")},
			covered:    540,
			shortfall:  0,
		},
		{
			name: "Duplicate plans are not double counted",
			planned: []WorkSlot{
				slot(t, "W1", "08:00", "17:00"),
				slot(t, "W1", "08:00", "17:00"),
			},
			covered:   540,
			shortfall: 0,
		},
		{
			name:      "Nothing planned",
			covered:   0,
			shortfall: 540,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateShiftCoverage(shift, tt.planned, tt.reassigned)
			assert.Equal(t, 540, result.RequiredMinutes)
			assert.Equal(t, tt.covered, result.CoveredMinutes)
			assert.Equal(t, tt.shortfall, result.ShortfallMinutes)
			assert.Equal(t, tt.shortfall == 0, result.Covered())
		})
	}
}

// TestCoverageMonotonicity verifies adding a disjoint slot never lowers
// coverage nor raises the shortfall
func TestCoverageMonotonicity(t *testing.T) {
	shift := ShiftDefinition{StartTime: 480, EndTime: 1020}
	planned := []WorkSlot{slot(t, "W1", "08:00", "10:00")}

	before := ValidateShiftCoverage(shift, planned, nil)
	planned = append(planned, slot(t, "W2", "13:00", "14:00"))
	after := ValidateShiftCoverage(shift, planned, nil)

	assert.GreaterOrEqual(t, after.CoveredMinutes, before.CoveredMinutes)
	assert.LessOrEqual(t, after.ShortfallMinutes, before.ShortfallMinutes)
}

// TestDetectOverlap tests conflict detection on one worker's slots
func TestDetectOverlap(t *testing.T) {
	tests := []struct {
		name      string
		slots     []WorkSlot
		conflicts int
	}{
		{
			name: "Overlapping plans conflict",
			slots: []WorkSlot{
				slot(t, "W1", "09:00", "11:00"),
				slot(t, "W2", "10:30", "12:00"),
			},
			conflicts: 1,
		},
		{
			name: "Boundary touch is adjacency",
			slots: []WorkSlot{
				slot(t, "W1", "09:00", "11:00"),
				slot(t, "W2", "11:00", "12:00"),
			},
			conflicts: 0,
		},
		{
			name:      "Single slot never conflicts",
			slots:     []WorkSlot{slot(t, "W1", "09:00", "11:00")},
			conflicts: 0,
		},
		{
			name: "Chain of overlaps reports each adjacent pair",
			slots: []WorkSlot{
				slot(t, "W1", "09:00", "11:00"),
				slot(t, "W2", "10:00", "12:00"),
				slot(t, "W3", "11:30", "13:00"),
			},
			conflicts: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := DetectOverlap(tt.slots)
			assert.Len(t, findings, tt.conflicts)
			for _, f := range findings {
				assert.Equal(t, FindingOverlappingPlans, f.Code)
			}
		})
	}
}

// TestDetectOverlapSymmetry verifies the same conflict is reported whichever
// order the slots arrive in
func TestDetectOverlapSymmetry(t *testing.T) {
	a := slot(t, "W1", "09:00", "11:00")
	b := slot(t, "W2", "10:30", "12:00")

	forward := DetectOverlap([]WorkSlot{a, b})
	backward := DetectOverlap([]WorkSlot{b, a})

	require.Len(t, forward, 1)
	require.Len(t, backward, 1)
	assert.Equal(t, forward[0].FirstWork, backward[0].FirstWork)
	assert.Equal(t, forward[0].SecondWork, backward[0].SecondWork)
}

// TestDetectOverlapSymmetrySameStart covers slots sharing a start time, where
// sorting by start alone would leave the pairing input-order dependent
func TestDetectOverlapSymmetrySameStart(t *testing.T) {
	a := slot(t, "W1", "09:00", "11:00")
	b := slot(t, "W2", "09:00", "10:00")

	forward := DetectOverlap([]WorkSlot{a, b})
	backward := DetectOverlap([]WorkSlot{b, a})

	require.Len(t, forward, 1)
	require.Len(t, backward, 1)
	assert.Equal(t, "W1", forward[0].FirstWork)
	assert.Equal(t, "W2", forward[0].SecondWork)
	assert.Equal(t, forward[0].FirstWork, backward[0].FirstWork)
	assert.Equal(t, forward[0].SecondWork, backward[0].SecondWork)
}

// TestValidateReassignmentCoverage tests the reassigned-but-unplanned check
func TestValidateReassignmentCoverage(t *testing.T) {
	planned := []WorkSlot{slot(t, "W1", "10:00", "12:00")}

	tests := []struct {
		name     string
		into     []WorkSlot
		findings int
	}{
		{
			name:     "Reassignment overlapping planned work",
			into:     []WorkSlot{slot(t, "", "11:00", "13:00")},
			findings: 0,
		},
		{
			name:     "Reassignment with no planned work",
			into:     []WorkSlot{slot(t, "", "14:00", "16:00")},
			findings: 1,
		},
		{
			name:     "Boundary touch does not count as planned",
			into:     []WorkSlot{slot(t, "", "12:00", "14:00")},
			findings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := ValidateReassignmentCoverage(tt.into, planned)
			assert.Len(t, findings, tt.findings)
			for _, f := range findings {
				assert.Equal(t, FindingReassignmentUnplanned, f.Code)
			}
		})
	}
}
