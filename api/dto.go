/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the payroll and attendance model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Reports:
    ProcessReportRequest, PayrollResultDTO, DayRecordDTO

  Workers:
    factory.WorkerJSON is used directly (it already owns the schema)

  Bonuses:
    BonusesDTO

MONEY:
  Amounts are decimal strings ("58200", "4850.50"), never floats.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/worker.go: WorkerJSON type
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/attendance-payroll/attendance"
	"github.com/warp/attendance-payroll/payroll"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ProcessReportRequest is the body of POST /api/reports/process.
type ProcessReportRequest struct {
	Text      string   `json:"text"`
	Holidays  []string `json:"holidays,omitempty"`  // day-of-month, "05" or "5"
	Justified []string `json:"justified,omitempty"` // day-of-month
}

// PayrollResultDTO is the payroll computation for one report.
type PayrollResultDTO struct {
	WorkerName         string          `json:"worker_name"`
	HoursWorked        int             `json:"hours_worked"`
	NetMinutes         int             `json:"net_minutes"`
	HoursDeducted      int             `json:"hours_deducted"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	BasePay            decimal.Decimal `json:"base_pay"`
	BonusKind          string          `json:"bonus_kind"`
	BonusAmount        decimal.Decimal `json:"bonus_amount"`
	FinalPay           decimal.Decimal `json:"final_pay"`
	AbsentDaysCount    int             `json:"absent_days_count"`
	TotalScheduledDays int             `json:"total_scheduled_days"`
	DayRecords         []DayRecordDTO  `json:"day_records"`
}

// DayRecordDTO is one scheduled day.
type DayRecordDTO struct {
	Date          string           `json:"date"`
	Weekday       string           `json:"weekday"`
	CheckIn       string           `json:"check_in,omitempty"`
	CheckOut      string           `json:"check_out,omitempty"`
	RawHours      *decimal.Decimal `json:"raw_hours,omitempty"`
	Status        string           `json:"status"`
	MinutesLate   int              `json:"minutes_late"`
	HoursDeducted int              `json:"hours_deducted"`
	IsHoliday     bool             `json:"is_holiday"`
	IsJustified   bool             `json:"is_justified"`
}

// BonusesDTO is the bonus table.
type BonusesDTO struct {
	Bonus1 decimal.Decimal `json:"bonus1"`
	Bonus2 decimal.Decimal `json:"bonus2"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error        string   `json:"error"`
	Code         string   `json:"code,omitempty"`
	Details      any      `json:"details,omitempty"`
	KnownWorkers []string `json:"known_workers,omitempty"`
}

// HealthDTO is returned by GET /api/health.
type HealthDTO struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// ToPayrollResultDTO converts an engine result to its JSON shape.
func ToPayrollResultDTO(res *payroll.Result) PayrollResultDTO {
	dto := PayrollResultDTO{
		WorkerName:         res.WorkerName,
		HoursWorked:        res.HoursWorked,
		NetMinutes:         res.NetMinutes,
		HoursDeducted:      res.HoursDeducted,
		HourlyRate:         res.HourlyRate,
		BasePay:            res.BasePay,
		BonusKind:          string(res.BonusKind),
		BonusAmount:        res.BonusAmount,
		FinalPay:           res.FinalPay,
		AbsentDaysCount:    res.AbsentDaysCount,
		TotalScheduledDays: res.TotalScheduledDays,
		DayRecords:         make([]DayRecordDTO, len(res.DayRecords)),
	}
	for i, r := range res.DayRecords {
		dto.DayRecords[i] = toDayRecordDTO(r)
	}
	return dto
}

func toDayRecordDTO(r attendance.DayRecord) DayRecordDTO {
	dto := DayRecordDTO{
		Date:          r.Date,
		Weekday:       r.WeekdayCode,
		RawHours:      r.RawHours(),
		Status:        string(r.Status),
		MinutesLate:   r.MinutesLate,
		HoursDeducted: r.HoursDeducted,
		IsHoliday:     r.IsHoliday,
		IsJustified:   r.IsJustified,
	}
	if r.CheckIn != nil {
		dto.CheckIn = r.CheckIn.String()
	}
	if r.CheckOut != nil {
		dto.CheckOut = r.CheckOut.String()
	}
	return dto
}
