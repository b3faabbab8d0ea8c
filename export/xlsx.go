package export

import (
	"fmt"
	"io"

	"github.com/warp/attendance-payroll/payroll"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Resumen"
	DetailSheet  = "Detalle"
)

var detailHeader = []string{
	"Fecha", "Dia", "Entrada", "Salida", "Horas", "Estado",
	"Min. tarde", "Horas desc.", "Feriado", "Justificado",
}

// WriteXLSX writes a workbook with a summary sheet and a per-day sheet.
func WriteXLSX(w io.Writer, res *payroll.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(DetailSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeSummary(f, res, headerStyle); err != nil {
		return err
	}
	if err := writeDetail(f, res, headerStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, res *payroll.Result, style int) error {
	f.SetColWidth(SummarySheet, "A", "A", 22)
	f.SetColWidth(SummarySheet, "B", "B", 18)

	f.SetCellValue(SummarySheet, "A1", "Concepto")
	f.SetCellValue(SummarySheet, "B1", "Valor")
	f.SetCellStyle(SummarySheet, "A1", "B1", style)

	summary := [][2]any{
		{"Trabajador", res.WorkerName},
		{"Dias programados", res.TotalScheduledDays},
		{"Faltas", res.AbsentDaysCount},
		{"Horas descontadas", res.HoursDeducted},
		{"Horas trabajadas", res.HoursWorked},
		{"Tarifa hora", res.HourlyRate.InexactFloat64()},
		{"Pago base", res.BasePay.InexactFloat64()},
		{"Bono", string(res.BonusKind)},
		{"Monto bono", res.BonusAmount.InexactFloat64()},
		{"Pago final", res.FinalPay.InexactFloat64()},
	}
	for i, kv := range summary {
		row := i + 2
		if err := f.SetCellValue(SummarySheet, cell(1, row), kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(SummarySheet, cell(2, row), kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeDetail(f *excelize.File, res *payroll.Result, style int) error {
	for i, h := range detailHeader {
		f.SetCellValue(DetailSheet, cell(i+1, 1), h)
	}
	last, _ := excelize.ColumnNumberToName(len(detailHeader))
	f.SetCellStyle(DetailSheet, "A1", last+"1", style)
	f.SetColWidth(DetailSheet, "A", last, 12)

	for i, r := range Rows(res) {
		values := []any{
			r.Date, r.Weekday, r.CheckIn, r.CheckOut, r.RawHours, r.Status,
			r.MinutesLate, r.HoursDeducted, r.Holiday, r.Justified,
		}
		if err := f.SetSheetRow(DetailSheet, cell(1, i+2), &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
