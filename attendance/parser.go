package attendance

import (
	"regexp"
	"strings"

	"github.com/warp/attendance-payroll/generic"
)

// =============================================================================
// REPORT PARSER
// =============================================================================
//
// Expected layout (one employee per report, one line per day):
//
//   Nombre  Ricardo Gall     Fecha 01/03/2025 - 31/03/2025
//   Dia     Entrada  Salida
//   03 Lu   08:05    14:00
//   04 Ma   Falta
//   05 Mi   07:48    14:05
//
// Everything that is neither the name field nor a day line is ignored.

var (
	// The label must open its line and is case-sensitive; the name may sit
	// on the following line.
	namePattern = regexp.MustCompile(
		`(?m)^[ \t]*(?:Nombre|Name)\b[ \t]*:?\s+([^\n]+?)(?:[ \t]+(?:Fecha|Date)\b[^\n]*)?[ \t]*$`)

	dateLabelPattern = regexp.MustCompile(`^(?:Fecha|Date)\b`)

	dayLinePattern = regexp.MustCompile(
		`^\s*(\d{2})\s+(` + generic.WeekdayCodePattern() + `)\s+(.+?)\s*$`)
)

// ParseReport extracts the worker name and the day lines from a report.
// It fails only when no name can be found.
func ParseReport(text string) (*Report, error) {
	text = normalizeNewlines(text)

	name, ok := extractName(text)
	if !ok {
		return nil, &ParseError{Kind: MissingName}
	}

	return &Report{
		WorkerName: name,
		Lines:      extractDayLines(text),
	}, nil
}

func extractName(text string) (string, bool) {
	m := namePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	raw := strings.TrimSpace(m[1])
	if dateLabelPattern.MatchString(raw) {
		return "", false
	}
	name := generic.NormalizeName(raw)
	return name, name != ""
}

func extractDayLines(text string) []RawDayLine {
	var lines []RawDayLine
	for i, line := range strings.Split(text, "\n") {
		m := dayLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		weekday, ok := generic.ParseWeekdayCode(m[2])
		if !ok {
			continue
		}
		lines = append(lines, RawDayLine{
			LineNo:      i + 1,
			Date:        m[1],
			WeekdayCode: m[2],
			Weekday:     weekday,
			Remainder:   m[3],
		})
	}
	return lines
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
