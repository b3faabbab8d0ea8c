package attendance

import (
	"strings"
	"unicode"

	"github.com/warp/attendance-payroll/generic"
)

// =============================================================================
// POLICY CONSTANTS
// =============================================================================

const (
	// LateThresholdMinutes is the first minute of lateness that costs an hour.
	LateThresholdMinutes = 10

	// SevereLateMinutes is the first minute of lateness that costs two hours.
	SevereLateMinutes = 60

	// HolidayMultiplier applies to hours worked on a holiday.
	HolidayMultiplier = 2
)

// absenceMarkers are matched case-sensitively anywhere in the line, so
// "Falta." and "(Falta)" still mark an absence.
var absenceMarkers = []string{"Falta", "Absent"}

// =============================================================================
// DAY RECORD BUILDER
// =============================================================================

// Builder converts raw day lines into records for one worker and one set of
// overrides. A Builder is immutable and safe for concurrent use.
type Builder struct {
	profile   generic.WorkerProfile
	holidays  generic.DateSet
	justified generic.DateSet
}

func NewBuilder(profile generic.WorkerProfile, holidays, justified generic.DateSet) *Builder {
	return &Builder{profile: profile, holidays: holidays, justified: justified}
}

// BuildAll builds every scheduled line, preserving input order.
func (b *Builder) BuildAll(lines []RawDayLine) []DayRecord {
	records := make([]DayRecord, 0, len(lines))
	for _, line := range lines {
		if rec, ok := b.Build(line); ok {
			records = append(records, rec)
		}
	}
	return records
}

// Build returns the record for one line. ok is false when the weekday is not
// one of the worker's scheduled days; such lines do not count at all.
func (b *Builder) Build(line RawDayLine) (rec DayRecord, ok bool) {
	if !b.profile.WorksOn(line.Weekday) {
		return DayRecord{}, false
	}

	rec = DayRecord{
		Date:        line.Date,
		WeekdayCode: line.WeekdayCode,
		IsHoliday:   b.holidays.Has(line.Date),
		IsJustified: b.justified.Has(line.Date),
	}

	absent := hasAbsenceMarker(line.Remainder)
	if !absent {
		rec.CheckIn, rec.CheckOut = extractTimes(line.Remainder)
	}

	rec.Status = classify(absent, rec)

	if rec.CheckIn != nil && rec.CheckOut != nil {
		raw := rec.CheckOut.Sub(*rec.CheckIn)
		rec.RawMinutes = &raw
	}

	if rec.Status.CountsHours() {
		rec.MinutesLate = rec.CheckIn.Sub(b.profile.ScheduledStart)
		rec.HoursDeducted = deduction(rec.MinutesLate, rec.IsJustified)
	}

	return rec, true
}

func classify(absent bool, rec DayRecord) Status {
	hasIn, hasOut := rec.CheckIn != nil, rec.CheckOut != nil
	switch {
	case absent && rec.IsJustified:
		return StatusAbsentJustified
	case absent && !rec.IsHoliday:
		return StatusAbsent
	case rec.IsHoliday && !hasIn:
		return StatusHolidayNotWorked
	case rec.IsHoliday && hasOut:
		return StatusHolidayWorked
	case hasIn && hasOut:
		return StatusWorked
	case hasIn || hasOut:
		return StatusIncomplete
	default:
		return StatusNonWorkday
	}
}

// deduction returns the hours removed for a late arrival.
// A justified day is never penalized.
func deduction(minutesLate int, justified bool) int {
	switch {
	case justified, minutesLate < LateThresholdMinutes:
		return 0
	case minutesLate < SevereLateMinutes:
		return 1
	default:
		return 2
	}
}

func hasAbsenceMarker(remainder string) bool {
	for _, m := range absenceMarkers {
		if strings.Contains(remainder, m) {
			return true
		}
	}
	return false
}

// extractTimes returns the first two well-formed HH:MM tokens.
// Tokens are split on anything that is not a digit or a colon, so
// "08:05-14:00" yields two tokens and "108:00" yields none.
func extractTimes(remainder string) (in, out *generic.ClockTime) {
	tokens := strings.FieldsFunc(remainder, func(r rune) bool {
		return r != ':' && !unicode.IsDigit(r)
	})
	var found []generic.ClockTime
	for _, tok := range tokens {
		c, err := generic.ParseClock(tok)
		if err != nil {
			continue
		}
		found = append(found, c)
		if len(found) == 2 {
			break
		}
	}
	if len(found) > 0 {
		in = &found[0]
	}
	if len(found) > 1 {
		out = &found[1]
	}
	return in, out
}
