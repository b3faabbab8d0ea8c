// Package payroll turns day records into an amount to pay.
// It owns the commercial rounding, the bonus rules and the Engine that
// runs the whole pipeline for one report.
package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/attendance-payroll/attendance"
)

// =============================================================================
// BONUS KIND
// =============================================================================

type BonusKind string

const (
	BonusNone BonusKind = "none"
	Bonus1    BonusKind = "bonus1" // early on every counted day
	Bonus2    BonusKind = "bonus2" // never more than 10 minutes late
)

// =============================================================================
// RESULT
// =============================================================================

// Result is the payroll computation for one report.
// FinalPay = BasePay + BonusAmount; BasePay = HoursWorked * HourlyRate.
type Result struct {
	WorkerName         string
	HoursWorked        int // after commercial rounding
	NetMinutes         int // before rounding, after deductions
	HoursDeducted      int
	HourlyRate         decimal.Decimal
	BasePay            decimal.Decimal
	BonusKind          BonusKind
	BonusAmount        decimal.Decimal
	FinalPay           decimal.Decimal
	DayRecords         []attendance.DayRecord
	AbsentDaysCount    int
	TotalScheduledDays int
}
