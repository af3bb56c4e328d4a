package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 1440

// InvalidInputError reports malformed engine input. It names the offending
// field so callers can surface it without parsing the message.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// TimeOfDay is a clock time expressed as minutes since midnight (0-1439).
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" or "HH:MM:SS" clock string. Seconds are
// accepted for compatibility with the attendance feed but do not contribute
// to the minute value.
func ParseTimeOfDay(field, value string) (TimeOfDay, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, &InvalidInputError{Field: field, Value: value, Reason: "expected HH:MM or HH:MM:SS"}
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, &InvalidInputError{Field: field, Value: value, Reason: "hours must be 00-23"}
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, &InvalidInputError{Field: field, Value: value, Reason: "minutes must be 00-59"}
	}

	if len(parts) == 3 {
		seconds, err := strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, &InvalidInputError{Field: field, Value: value, Reason: "seconds must be 00-59"}
		}
	}

	return TimeOfDay(hours*60 + minutes), nil
}

// String renders the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Interval is a clock-time span within one working day. To may be numerically
// less than From, which means the interval crosses midnight.
type Interval struct {
	From TimeOfDay `bson:"from" json:"from"`
	To   TimeOfDay `bson:"to" json:"to"`
}

// ParseInterval parses a from/to clock string pair.
func ParseInterval(fromField, fromValue, toField, toValue string) (Interval, error) {
	from, err := ParseTimeOfDay(fromField, fromValue)
	if err != nil {
		return Interval{}, err
	}
	to, err := ParseTimeOfDay(toField, toValue)
	if err != nil {
		return Interval{}, err
	}
	return Interval{From: from, To: to}, nil
}

// Minutes returns the overnight-aware length of the interval. A zero-length
// interval returns 0, never a negative count.
func (iv Interval) Minutes() int {
	return Duration(iv.From, iv.To)
}

// Crosses reports whether the interval wraps past midnight.
func (iv Interval) Crosses() bool {
	return iv.To < iv.From
}

func (iv Interval) String() string {
	return iv.From.String() + "-" + iv.To.String()
}

// normalized returns the interval's endpoints on a single day-relative frame,
// extending the end by a day when it numerically precedes the start.
func (iv Interval) normalized() (start, end int) {
	start = int(iv.From)
	end = int(iv.To)
	if end < start {
		end += minutesPerDay
	}
	return start, end
}

// Duration computes to - from in minutes, adding a day when the span crosses
// midnight.
func Duration(from, to TimeOfDay) int {
	d := int(to) - int(from)
	if d < 0 {
		d += minutesPerDay
	}
	return d
}

// OverlapMinutes returns the overlap of two spans already placed on a common
// day-relative frame.
func OverlapMinutes(aStart, aEnd, bStart, bEnd int) int {
	overlap := min(aEnd, bEnd) - max(aStart, bStart)
	if overlap < 0 {
		return 0
	}
	return overlap
}
