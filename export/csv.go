// Package export renders a payroll result as CSV, XLSX or a PDF payslip.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/warp/attendance-payroll/attendance"
	"github.com/warp/attendance-payroll/payroll"
)

// DayRow is one DayRecord flattened for tabular output.
type DayRow struct {
	Worker        string `csv:"worker"`
	Date          string `csv:"date"`
	Weekday       string `csv:"weekday"`
	CheckIn       string `csv:"check_in"`
	CheckOut      string `csv:"check_out"`
	RawHours      string `csv:"raw_hours"`
	Status        string `csv:"status"`
	MinutesLate   int    `csv:"minutes_late"`
	HoursDeducted int    `csv:"hours_deducted"`
	Holiday       bool   `csv:"holiday"`
	Justified     bool   `csv:"justified"`
}

// Rows flattens the result's day records in report order.
func Rows(res *payroll.Result) []*DayRow {
	rows := make([]*DayRow, 0, len(res.DayRecords))
	for _, r := range res.DayRecords {
		rows = append(rows, newDayRow(res.WorkerName, r))
	}
	return rows
}

func newDayRow(worker string, r attendance.DayRecord) *DayRow {
	row := &DayRow{
		Worker:        worker,
		Date:          r.Date,
		Weekday:       r.WeekdayCode,
		Status:        string(r.Status),
		MinutesLate:   r.MinutesLate,
		HoursDeducted: r.HoursDeducted,
		Holiday:       r.IsHoliday,
		Justified:     r.IsJustified,
	}
	if r.CheckIn != nil {
		row.CheckIn = r.CheckIn.String()
	}
	if r.CheckOut != nil {
		row.CheckOut = r.CheckOut.String()
	}
	if h := r.RawHours(); h != nil {
		row.RawHours = h.StringFixed(2)
	}
	return row
}

// WriteCSV writes one row per day record, with a header.
func WriteCSV(w io.Writer, res *payroll.Result) error {
	if err := gocsv.Marshal(Rows(res), w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
