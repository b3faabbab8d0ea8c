package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/warp/attendance-payroll/payroll"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts the format names case-insensitively. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/json"
}

// Filename is the download name for a worker's result.
func (f Format) Filename(worker string) string {
	return fmt.Sprintf("payroll_%s.%s", strings.ReplaceAll(worker, " ", "_"), f)
}

// Write renders res in one of the binary or tabular formats.
// JSON is left to the caller's encoder.
func Write(w io.Writer, f Format, res *payroll.Result) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatXLSX:
		return WriteXLSX(w, res)
	case FormatPDF:
		return WritePDF(w, res)
	}
	return fmt.Errorf("format %q is not a file export", f)
}
