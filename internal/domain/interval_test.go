package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseTimeOfDay tests clock string parsing
func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		expected    TimeOfDay
		expectError bool
	}{
		{name: "Plain HH:MM", value: "08:30", expected: 510},
		{name: "With seconds", value: "08:30:45", expected: 510},
		{name: "Midnight", value: "00:00", expected: 0},
		{name: "Last minute of day", value: "23:59", expected: 1439},
		{name: "Hours out of range", value: "24:00", expectError: true},
		{name: "Minutes out of range", value: "08:60", expectError: true},
		{name: "Seconds out of range", value: "08:30:61", expectError: true},
		{name: "Not a time", value: "morning", expectError: true},
		{name: "Empty", value: "", expectError: true},
		{name: "Too many parts", value: "08:30:00:00", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay("startTime", tt.value)

			if tt.expectError {
				require.Error(t, err)
				var invalid *InvalidInputError
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, "startTime", invalid.Field)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

// TestDuration tests overnight-aware durations
func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected int
	}{
		{name: "Day shift", from: "08:00", to: "17:00", expected: 540},
		{name: "Zero length", from: "08:00", to: "08:00", expected: 0},
		{name: "Night shift crossing midnight", from: "22:00", to: "06:00", expected: 480},
		{name: "One minute before midnight", from: "23:59", to: "00:00", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := ParseInterval("from", tt.from, "to", tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, iv.Minutes())
		})
	}
}

// TestDurationOvernightSymmetry verifies the wraparound-adjusted result
// matches a manually day-shifted computation
func TestDurationOvernightSymmetry(t *testing.T) {
	cases := []Interval{
		{From: 1320, To: 360}, // 22:00-06:00
		{From: 1439, To: 0},
		{From: 720, To: 719},
	}
	for _, iv := range cases {
		require.True(t, iv.Crosses())
		shifted := (int(iv.To) + minutesPerDay) - int(iv.From)
		assert.Equal(t, shifted, iv.Minutes(), "interval %s", iv)
	}
}

// TestOverlapMinutes tests overlap on a common frame
func TestOverlapMinutes(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd, ex int
	}{
		{name: "Partial overlap", aStart: 540, aEnd: 660, bStart: 630, bEnd: 720, ex: 30},
		{name: "Containment", aStart: 480, aEnd: 1020, bStart: 720, bEnd: 750, ex: 30},
		{name: "Disjoint", aStart: 480, aEnd: 540, bStart: 600, bEnd: 660, ex: 0},
		{name: "Boundary touch", aStart: 480, aEnd: 540, bStart: 540, bEnd: 600, ex: 0},
		{name: "Identical", aStart: 480, aEnd: 540, bStart: 480, bEnd: 540, ex: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ex, OverlapMinutes(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.ex, OverlapMinutes(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
