/*
Package generic provides the domain-agnostic building blocks of the payroll engine.

PURPOSE:
  This package holds the types every other package agrees on: who a worker
  is, what their schedule looks like, how much the bonuses are worth, and
  the collaborator interfaces (WorkerDirectory, BonusTable) the engine reads
  from. It knows nothing about report text or payroll rules.

KEY CONCEPTS IN THIS FILE (types.go):
  - WorkerProfile: identity, pay rate and weekly schedule of one employee
  - BonusAmounts: the two configurable monetary bonuses
  - NormalizeName: the single name normalization used everywhere

DESIGN PRINCIPLES:
  1. Precision: money uses decimal.Decimal, never float64
  2. One normalization: names are trimmed and lower-cased at every boundary
  3. Read-only for the engine: profiles are edited by a management surface

USAGE:
  profile := generic.WorkerProfile{
      Name:           generic.NormalizeName("  Ricardo Gall "),
      HourlyRate:     decimal.NewFromInt(4850),
      ScheduledDays:  []time.Weekday{time.Monday, time.Tuesday},
      ScheduledStart: generic.MustParseClock("08:00"),
  }
  if err := profile.Validate(); err != nil { ... }

SEE ALSO:
  - time.go: ClockTime, weekday codes, DateSet
  - store.go: WorkerDirectory / BonusTable interfaces
  - errors.go: sentinel and structured errors
*/
package generic

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// WORKER PROFILE
// =============================================================================

// WorkerProfile is the identity and schedule of one employee.
type WorkerProfile struct {
	ID             string
	Name           string
	HourlyRate     decimal.Decimal
	ScheduledDays  []time.Weekday
	ScheduledStart ClockTime
	ScheduledEnd   *ClockTime
}

// NormalizeName trims and lower-cases a worker name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// WorksOn reports whether the weekday is one of the worker's scheduled days.
func (p WorkerProfile) WorksOn(day time.Weekday) bool {
	for _, d := range p.ScheduledDays {
		if d == day {
			return true
		}
	}
	return false
}

// Validate checks the profile invariants.
func (p WorkerProfile) Validate() error {
	if p.Name == "" || p.Name != NormalizeName(p.Name) {
		return &ValidationError{Field: "name", Message: "must be non-empty, trimmed and lower-case"}
	}
	if !p.HourlyRate.IsPositive() {
		return &ValidationError{Field: "hourly_rate", Message: "must be positive"}
	}
	if len(p.ScheduledDays) == 0 {
		return &ValidationError{Field: "scheduled_days", Message: "at least one day is required"}
	}
	seen := make(map[time.Weekday]bool, len(p.ScheduledDays))
	for _, d := range p.ScheduledDays {
		if d == time.Sunday {
			return &ValidationError{Field: "scheduled_days", Message: "only Monday to Saturday can be scheduled"}
		}
		if seen[d] {
			return &ValidationError{Field: "scheduled_days", Message: "duplicate day " + WeekdayCode(d)}
		}
		seen[d] = true
	}
	if !p.ScheduledStart.Valid() {
		return &ValidationError{Field: "scheduled_start", Message: "invalid clock time"}
	}
	if p.ScheduledEnd != nil {
		if !p.ScheduledEnd.Valid() {
			return &ValidationError{Field: "scheduled_end", Message: "invalid clock time"}
		}
		if *p.ScheduledEnd <= p.ScheduledStart {
			return &ValidationError{Field: "scheduled_end", Message: "must be after scheduled_start"}
		}
	}
	return nil
}

// SortedDays returns the scheduled days ordered Monday first.
func (p WorkerProfile) SortedDays() []time.Weekday {
	days := append([]time.Weekday(nil), p.ScheduledDays...)
	sort.Slice(days, func(i, j int) bool {
		return mondayFirst(days[i]) < mondayFirst(days[j])
	})
	return days
}

func mondayFirst(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// =============================================================================
// BONUS AMOUNTS
// =============================================================================

// BonusAmounts holds the monetary value of both bonuses.
// The zero value is an unset table: both bonuses pay nothing.
type BonusAmounts struct {
	Bonus1 decimal.Decimal
	Bonus2 decimal.Decimal
}

// Validate rejects negative amounts.
func (b BonusAmounts) Validate() error {
	if b.Bonus1.IsNegative() {
		return &ValidationError{Field: "bonus1", Message: "must not be negative"}
	}
	if b.Bonus2.IsNegative() {
		return &ValidationError{Field: "bonus2", Message: "must not be negative"}
	}
	return nil
}
