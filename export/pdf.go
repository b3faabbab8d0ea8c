package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/warp/attendance-payroll/payroll"
)

// WritePDF writes a one-page payslip.
func WritePDF(w io.Writer, res *payroll.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Recibo de pago")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Trabajador: %s", res.WorkerName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Dias programados: %d   Faltas: %d", res.TotalScheduledDays, res.AbsentDaysCount))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	for _, h := range []struct {
		label string
		width float64
	}{{"Fecha", 18}, {"Dia", 14}, {"Entrada", 22}, {"Salida", 22}, {"Horas", 18}, {"Estado", 44}, {"Tarde", 18}, {"Desc.", 18}} {
		pdf.CellFormat(h.width, 7, h.label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range Rows(res) {
		pdf.CellFormat(18, 6, r.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(14, 6, r.Weekday, "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, r.CheckIn, "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, r.CheckOut, "1", 0, "C", false, 0, "")
		pdf.CellFormat(18, 6, r.RawHours, "1", 0, "R", false, 0, "")
		pdf.CellFormat(44, 6, r.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", r.MinutesLate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", r.HoursDeducted), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Horas descontadas: %d", res.HoursDeducted),
		fmt.Sprintf("Horas trabajadas: %d", res.HoursWorked),
		fmt.Sprintf("Tarifa hora: %s", res.HourlyRate.StringFixed(2)),
		fmt.Sprintf("Pago base: %s", res.BasePay.StringFixed(2)),
		fmt.Sprintf("Bono (%s): %s", res.BonusKind, res.BonusAmount.StringFixed(2)),
	}
	for _, l := range lines {
		pdf.Cell(0, 8, l)
		pdf.Ln(7)
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Pago final: %s", res.FinalPay.StringFixed(2)))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
