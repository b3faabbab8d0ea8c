/*
Package factory provides JSON to Go worker profile conversion.

PURPOSE:
  Converts JSON worker definitions into validated generic.WorkerProfile
  values and back. Worker profiles are edited outside the engine (admin API,
  config file seeds), so every entry point goes through this factory and
  gets the same defaults and validation.

JSON SCHEMA:
  {
    "id": "6f1c...",               optional, assigned by storage
    "name": "Ricardo Gall",        normalized to "ricardo gall"
    "hourly_rate": 4850,           number or string
    "scheduled_days": ["Lu", "Ma", "Mi", "Ju", "Vi"],
    "scheduled_start": "08:00",
    "scheduled_end": "14:00"       optional
  }

  Legacy exports use Spanish keys; they are accepted on input:
    nombre, tarifa_hora, dias_trabajo, hora_entrada_programada,
    hora_salida_programada

  Days accept either code set (Lu/Ma/.. or Mo/Tu/..) or English day names.

USAGE:
  f := factory.NewWorkerFactory()
  profile, err := f.ParseWorker(`{"name":"pablo","hourly_rate":4850,...}`)

SEE ALSO:
  - generic/types.go: WorkerProfile and its invariants
  - roster.go: default roster used to seed an empty directory
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/attendance-payroll/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// WorkerJSON is the JSON representation of a worker profile.
type WorkerJSON struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	ScheduledDays  []string        `json:"scheduled_days"`
	ScheduledStart string          `json:"scheduled_start"`
	ScheduledEnd   string          `json:"scheduled_end,omitempty"`
}

// legacyWorkerJSON carries the Spanish keys of older exports.
type legacyWorkerJSON struct {
	Nombre                *string          `json:"nombre"`
	TarifaHora            *decimal.Decimal `json:"tarifa_hora"`
	DiasTrabajo           []string         `json:"dias_trabajo"`
	HoraEntradaProgramada *string          `json:"hora_entrada_programada"`
	HoraSalidaProgramada  *string          `json:"hora_salida_programada"`
}

// UnmarshalJSON accepts both the current and the legacy key sets.
// Current keys win when both are present.
func (w *WorkerJSON) UnmarshalJSON(data []byte) error {
	type plain WorkerJSON
	var cur plain
	if err := json.Unmarshal(data, &cur); err != nil {
		return err
	}
	var legacy legacyWorkerJSON
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}

	if cur.Name == "" && legacy.Nombre != nil {
		cur.Name = *legacy.Nombre
	}
	if cur.HourlyRate.IsZero() && legacy.TarifaHora != nil {
		cur.HourlyRate = *legacy.TarifaHora
	}
	if len(cur.ScheduledDays) == 0 {
		cur.ScheduledDays = legacy.DiasTrabajo
	}
	if cur.ScheduledStart == "" && legacy.HoraEntradaProgramada != nil {
		cur.ScheduledStart = *legacy.HoraEntradaProgramada
	}
	if cur.ScheduledEnd == "" && legacy.HoraSalidaProgramada != nil {
		cur.ScheduledEnd = *legacy.HoraSalidaProgramada
	}

	*w = WorkerJSON(cur)
	return nil
}

// =============================================================================
// WORKER FACTORY
// =============================================================================

// WorkerFactory converts JSON workers to Go structs.
type WorkerFactory struct{}

func NewWorkerFactory() *WorkerFactory {
	return &WorkerFactory{}
}

// ParseWorker parses a JSON document into a validated profile.
func (f *WorkerFactory) ParseWorker(jsonStr string) (*generic.WorkerProfile, error) {
	var wj WorkerJSON
	if err := json.Unmarshal([]byte(jsonStr), &wj); err != nil {
		return nil, fmt.Errorf("failed to parse worker JSON: %w", err)
	}
	return f.FromJSON(wj)
}

// FromMap converts a loosely typed map (config files) into a profile.
func (f *WorkerFactory) FromMap(m map[string]any) (*generic.WorkerProfile, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode worker: %w", err)
	}
	return f.ParseWorker(string(data))
}

// FromJSON converts WorkerJSON to a validated generic.WorkerProfile.
func (f *WorkerFactory) FromJSON(wj WorkerJSON) (*generic.WorkerProfile, error) {
	days, err := ParseWeekdays(wj.ScheduledDays)
	if err != nil {
		return nil, err
	}

	start, err := generic.ParseClock(strings.TrimSpace(wj.ScheduledStart))
	if err != nil {
		return nil, &generic.ValidationError{Field: "scheduled_start", Message: err.Error()}
	}

	p := &generic.WorkerProfile{
		ID:             wj.ID,
		Name:           generic.NormalizeName(wj.Name),
		HourlyRate:     wj.HourlyRate,
		ScheduledDays:  days,
		ScheduledStart: start,
	}

	if s := strings.TrimSpace(wj.ScheduledEnd); s != "" {
		end, err := generic.ParseClock(s)
		if err != nil {
			return nil, &generic.ValidationError{Field: "scheduled_end", Message: err.Error()}
		}
		p.ScheduledEnd = &end
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ToJSON converts a profile to WorkerJSON. Days use the canonical codes,
// Monday first.
func (f *WorkerFactory) ToJSON(p generic.WorkerProfile) WorkerJSON {
	wj := WorkerJSON{
		ID:             p.ID,
		Name:           p.Name,
		HourlyRate:     p.HourlyRate,
		ScheduledStart: p.ScheduledStart.String(),
	}
	for _, d := range p.SortedDays() {
		wj.ScheduledDays = append(wj.ScheduledDays, generic.WeekdayCode(d))
	}
	if p.ScheduledEnd != nil {
		wj.ScheduledEnd = p.ScheduledEnd.String()
	}
	return wj
}

// ParseWeekdays accepts two-letter codes or English day names.
func ParseWeekdays(values []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		d, ok := parseWeekday(strings.TrimSpace(v))
		if !ok {
			return nil, &generic.ValidationError{Field: "scheduled_days", Message: fmt.Sprintf("unknown day %q", v)}
		}
		days = append(days, d)
	}
	return days, nil
}

func parseWeekday(v string) (time.Weekday, bool) {
	if d, ok := generic.ParseWeekdayCode(v); ok {
		return d, true
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(v, d.String()) {
			return d, true
		}
	}
	return 0, false
}
