package generic

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// CLOCK TIME - Minutes since midnight, no date, no zone
// =============================================================================

// ClockTime is a wall-clock time of day expressed in minutes since midnight.
type ClockTime int

const minutesPerDay = 24 * 60

// ParseClock parses an "HH:MM" token. Exactly two digits are required on
// each side of the colon.
func ParseClock(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
		}
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return ClockTime(h*60 + m), nil
}

// MustParseClock is ParseClock for literals; it panics on bad input.
func MustParseClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) Valid() bool  { return c >= 0 && c < minutesPerDay }
func (c ClockTime) Minutes() int { return int(c) }
func (c ClockTime) Hour() int    { return int(c) / 60 }
func (c ClockTime) Minute() int  { return int(c) % 60 }

// Sub returns c - other in minutes. The result is negative when other is later.
func (c ClockTime) Sub(other ClockTime) int { return int(c) - int(other) }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// =============================================================================
// WEEKDAY CODES - Two-letter codes used by the attendance export
// =============================================================================

// Reports are exported with Spanish codes; English codes are accepted too.
var weekdayCodes = map[string]time.Weekday{
	"Lu": time.Monday, "Ma": time.Tuesday, "Mi": time.Wednesday, "Ju": time.Thursday,
	"Vi": time.Friday, "Sa": time.Saturday, "Do": time.Sunday,
	"Mo": time.Monday, "Tu": time.Tuesday, "We": time.Wednesday, "Th": time.Thursday,
	"Fr": time.Friday, "Su": time.Sunday,
}

var canonicalCodes = map[time.Weekday]string{
	time.Monday: "Lu", time.Tuesday: "Ma", time.Wednesday: "Mi", time.Thursday: "Ju",
	time.Friday: "Vi", time.Saturday: "Sa", time.Sunday: "Do",
}

// ParseWeekdayCode maps a two-letter code to a weekday. Codes are case-sensitive.
func ParseWeekdayCode(code string) (time.Weekday, bool) {
	d, ok := weekdayCodes[code]
	return d, ok
}

// WeekdayCode returns the canonical code for a weekday.
func WeekdayCode(d time.Weekday) string {
	return canonicalCodes[d]
}

// WeekdayCodePattern is a regexp alternation of every accepted code.
func WeekdayCodePattern() string {
	codes := make([]string, 0, len(weekdayCodes))
	for c := range weekdayCodes {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return strings.Join(codes, "|")
}

// =============================================================================
// DATE SET - Day-of-month overrides (holiday / justified)
// =============================================================================

// DateSet is a set of day-of-month strings ("01".."31"). Reports carry no
// month or year, so overrides are keyed by the day as printed.
// A nil DateSet is empty.
type DateSet map[string]struct{}

// NewDateSet builds a set, padding single digits ("5" -> "05").
// Blank entries are ignored.
func NewDateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		if d = NormalizeDate(d); d != "" {
			s[d] = struct{}{}
		}
	}
	return s
}

// NormalizeDate trims a day-of-month and left-pads it to two digits.
func NormalizeDate(d string) string {
	d = strings.TrimSpace(d)
	if len(d) == 1 {
		return "0" + d
	}
	return d
}

func (s DateSet) Has(date string) bool {
	_, ok := s[NormalizeDate(date)]
	return ok
}

// Sorted returns the dates in ascending order.
func (s DateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
