package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustInterval(t *testing.T, from, to string) Interval {
	t.Helper()
	iv, err := ParseInterval("from", from, "to", to)
	if err != nil {
		t.Fatalf("unexpected parse err: %v", err)
	}
	return iv
}

// TestBreakOverlapMinutes tests break consumption of a work interval
func TestBreakOverlapMinutes(t *testing.T) {
	tests := []struct {
		name     string
		work     [2]string
		windows  [][2]string
		expected int
	}{
		{
			name:     "Lunch break inside the work period",
			work:     [2]string{"08:00", "17:00"},
			windows:  [][2]string{{"12:00", "12:30"}},
			expected: 30,
		},
		{
			name:     "Two breaks both inside",
			work:     [2]string{"08:00", "17:00"},
			windows:  [][2]string{{"10:00", "10:15"}, {"12:00", "12:30"}},
			expected: 45,
		},
		{
			name:     "Break partially outside the work period",
			work:     [2]string{"08:00", "12:15"},
			windows:  [][2]string{{"12:00", "12:30"}},
			expected: 15,
		},
		{
			name:     "Break entirely outside",
			work:     [2]string{"08:00", "11:00"},
			windows:  [][2]string{{"12:00", "12:30"}},
			expected: 0,
		},
		{
			name:     "No windows",
			work:     [2]string{"08:00", "17:00"},
			windows:  nil,
			expected: 0,
		},
		{
			name:     "Night work with break before midnight",
			work:     [2]string{"22:00", "06:00"},
			windows:  [][2]string{{"23:00", "23:30"}},
			expected: 30,
		},
		{
			name:     "Night work with break after midnight",
			work:     [2]string{"22:00", "06:00"},
			windows:  [][2]string{{"02:00", "02:30"}},
			expected: 30,
		},
		{
			name:     "Break window itself crossing midnight",
			work:     [2]string{"22:00", "06:00"},
			windows:  [][2]string{{"23:45", "00:15"}},
			expected: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			work := mustInterval(t, tt.work[0], tt.work[1])
			windows := make([]BreakWindow, 0, len(tt.windows))
			for _, w := range tt.windows {
				windows = append(windows, mustInterval(t, w[0], w[1]))
			}

			got := BreakOverlapMinutes(work, windows)
			assert.Equal(t, tt.expected, got)

			// Break non-negativity and boundedness holds for every case
			// with disjoint windows.
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, work.Minutes())
		})
	}
}

// TestBreakAdjustedMinutes covers the displayed-work figure of a standard
// day shift: 540 raw minutes less a 30 minute lunch
func TestBreakAdjustedMinutes(t *testing.T) {
	work := mustInterval(t, "08:00", "17:00")
	windows := []BreakWindow{mustInterval(t, "12:00", "12:30")}

	assert.Equal(t, 510, BreakAdjustedMinutes(work, windows))
}

// TestBreakOverlapNoDeduplication documents that windows overlapping each
// other are counted twice; the behavior is intentional
func TestBreakOverlapNoDeduplication(t *testing.T) {
	work := mustInterval(t, "08:00", "17:00")
	windows := []BreakWindow{
		mustInterval(t, "12:00", "12:30"),
		mustInterval(t, "12:15", "12:45"),
	}

	assert.Equal(t, 60, BreakOverlapMinutes(work, windows))
}
