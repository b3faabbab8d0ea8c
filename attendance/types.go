// Package attendance turns a raw attendance report into per-day records.
// It uses the generic types for schedules and overrides and applies the
// lateness and holiday policy to each scheduled day.
package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/attendance-payroll/generic"
)

// =============================================================================
// REPORT - Output of the parser
// =============================================================================

// Report is the parsed form of one employee's attendance export.
type Report struct {
	WorkerName string // normalized
	Lines      []RawDayLine
}

// RawDayLine is one line of the report that looks like a day.
type RawDayLine struct {
	LineNo      int
	Date        string // day of month, two digits, as printed
	WeekdayCode string // as printed ("Lu", "Mo", ...)
	Weekday     time.Weekday
	Remainder   string
}

// =============================================================================
// DAY STATUS
// =============================================================================

type Status string

const (
	StatusWorked           Status = "worked"
	StatusAbsent           Status = "absent"
	StatusAbsentJustified  Status = "absent_justified"
	StatusIncomplete       Status = "incomplete"
	StatusHolidayWorked    Status = "holiday_worked"
	StatusHolidayNotWorked Status = "holiday_not_worked"
	StatusNonWorkday       Status = "non_workday"
)

func (s Status) Valid() bool {
	switch s {
	case StatusWorked, StatusAbsent, StatusAbsentJustified, StatusIncomplete,
		StatusHolidayWorked, StatusHolidayNotWorked, StatusNonWorkday:
		return true
	}
	return false
}

// CountsHours reports whether the day contributes to the hour total.
func (s Status) CountsHours() bool {
	return s == StatusWorked || s == StatusHolidayWorked
}

// =============================================================================
// DAY RECORD
// =============================================================================

// DayRecord is the derived fact for one scheduled day. Records are built
// once and never patched; changing an override means rebuilding the report.
type DayRecord struct {
	Date          string
	WeekdayCode   string
	CheckIn       *generic.ClockTime
	CheckOut      *generic.ClockTime
	RawMinutes    *int // checkOut - checkIn, nil unless both are present
	Status        Status
	MinutesLate   int // signed, positive = late; 0 when not computed
	HoursDeducted int // 0, 1 or 2
	IsHoliday     bool
	IsJustified   bool
}

// RawHours returns the unmultiplied worked hours, or nil.
func (r DayRecord) RawHours() *decimal.Decimal {
	if r.RawMinutes == nil {
		return nil
	}
	h := decimal.NewFromInt(int64(*r.RawMinutes)).Div(decimal.NewFromInt(60))
	return &h
}

// EffectiveMinutes is the day's contribution to the pay total before
// deductions: raw minutes for worked days, doubled for worked holidays.
func (r DayRecord) EffectiveMinutes() int {
	if r.RawMinutes == nil {
		return 0
	}
	switch r.Status {
	case StatusWorked:
		return *r.RawMinutes
	case StatusHolidayWorked:
		return *r.RawMinutes * HolidayMultiplier
	}
	return 0
}
