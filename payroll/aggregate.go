package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/attendance-payroll/attendance"
	"github.com/warp/attendance-payroll/generic"
)

const (
	// RoundUpMinutes is the minute remainder from which an hour is rounded up.
	RoundUpMinutes = 35

	// Bonus1MaxMinutesLate: at least 11 minutes early on every counted day.
	Bonus1MaxMinutesLate = -11

	// Bonus2MaxMinutesLate: never more than 10 minutes late.
	Bonus2MaxMinutesLate = 10
)

// Aggregate sums the records of one worker into a Result.
// Records must come from a Builder for the same profile.
func Aggregate(records []attendance.DayRecord, profile generic.WorkerProfile, bonuses generic.BonusAmounts) *Result {
	res := &Result{
		WorkerName:         profile.Name,
		HourlyRate:         profile.HourlyRate,
		DayRecords:         records,
		TotalScheduledDays: len(records),
	}

	effective := 0
	for _, r := range records {
		if r.Status == attendance.StatusAbsent {
			res.AbsentDaysCount++
		}
		res.HoursDeducted += r.HoursDeducted
		effective += r.EffectiveMinutes()
	}

	res.NetMinutes = effective - res.HoursDeducted*60
	res.HoursWorked = RoundCommercial(res.NetMinutes)
	res.BasePay = decimal.NewFromInt(int64(res.HoursWorked)).Mul(profile.HourlyRate)

	res.BonusKind = DetermineBonus(records, res.AbsentDaysCount)
	res.BonusAmount = bonusAmount(res.BonusKind, bonuses)
	res.FinalPay = res.BasePay.Add(res.BonusAmount)
	return res
}

// RoundCommercial converts minutes to whole hours, rounding up only when the
// minute remainder is at least 35. 7h34m -> 7, 7h35m -> 8.
// Negative totals are floored first, as a clock would: -30m is -1h + 30m.
func RoundCommercial(minutes int) int {
	hours := minutes / 60
	rem := minutes % 60
	if rem < 0 {
		hours--
		rem += 60
	}
	if rem >= RoundUpMinutes {
		hours++
	}
	return hours
}

// DetermineBonus evaluates punctuality over the counted days. Any unjustified
// absence disqualifies. Holidays and justified days never count against
// either bonus.
func DetermineBonus(records []attendance.DayRecord, absentDays int) BonusKind {
	if absentDays > 0 {
		return BonusNone
	}

	counted := 0
	alwaysEarly, neverLate := true, true
	for _, r := range records {
		if !countsForBonus(r) {
			continue
		}
		counted++
		if r.MinutesLate > Bonus1MaxMinutesLate {
			alwaysEarly = false
		}
		if r.MinutesLate > Bonus2MaxMinutesLate {
			neverLate = false
		}
	}

	switch {
	case counted == 0:
		return BonusNone
	case alwaysEarly:
		return Bonus1
	case neverLate:
		return Bonus2
	default:
		return BonusNone
	}
}

func countsForBonus(r attendance.DayRecord) bool {
	return r.Status == attendance.StatusWorked &&
		r.CheckIn != nil &&
		!r.IsHoliday &&
		!r.IsJustified
}

func bonusAmount(kind BonusKind, b generic.BonusAmounts) decimal.Decimal {
	switch kind {
	case Bonus1:
		return b.Bonus1
	case Bonus2:
		return b.Bonus2
	}
	return decimal.Zero
}
