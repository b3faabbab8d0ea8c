package generic_test

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance-payroll/generic"
)

// =============================================================================
// CLOCK TIME
// =============================================================================

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"08:00", 480, true},
		{"14:35", 875, true},
		{"23:59", 1439, true},
		{"8:00", 0, false},
		{"08:0", 0, false},
		{"24:00", 0, false},
		{"08:60", 0, false},
		{"0800", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := generic.ParseClock(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, c.Minutes())
			assert.Equal(t, tt.in, c.String())
		})
	}
}

func TestClockTimeSub(t *testing.T) {
	in := generic.MustParseClock("07:45")
	start := generic.MustParseClock("08:00")

	assert.Equal(t, -15, in.Sub(start))
	assert.Equal(t, 15, start.Sub(in))
}

func TestMustParseClockPanics(t *testing.T) {
	assert.Panics(t, func() { generic.MustParseClock("nope") })
}

// =============================================================================
// WEEKDAY CODES
// =============================================================================

func TestWeekdayCodes(t *testing.T) {
	for _, pair := range [][2]string{{"Lu", "Mo"}, {"Ma", "Tu"}, {"Mi", "We"}, {"Ju", "Th"}, {"Vi", "Fr"}, {"Do", "Su"}} {
		es, ok := generic.ParseWeekdayCode(pair[0])
		require.True(t, ok, pair[0])
		en, ok := generic.ParseWeekdayCode(pair[1])
		require.True(t, ok, pair[1])
		assert.Equal(t, es, en)
		assert.Equal(t, pair[0], generic.WeekdayCode(es))
	}

	_, ok := generic.ParseWeekdayCode("lu")
	assert.False(t, ok, "codes are case-sensitive")
	_, ok = generic.ParseWeekdayCode("Xx")
	assert.False(t, ok)
}

func TestWeekdayCodePattern(t *testing.T) {
	re := regexp.MustCompile(`^(?:` + generic.WeekdayCodePattern() + `)$`)

	assert.True(t, re.MatchString("Sa"))
	assert.True(t, re.MatchString("Th"))
	assert.False(t, re.MatchString("sa"))
}

// =============================================================================
// DATE SET
// =============================================================================

func TestDateSet(t *testing.T) {
	s := generic.NewDateSet("5", " 07 ", "", "31")

	assert.True(t, s.Has("05"))
	assert.True(t, s.Has("5"))
	assert.True(t, s.Has("07"))
	assert.False(t, s.Has("06"))
	assert.Equal(t, []string{"05", "07", "31"}, s.Sorted())

	var empty generic.DateSet
	assert.False(t, empty.Has("01"))
	assert.Empty(t, empty.Sorted())
}

// =============================================================================
// WORKER PROFILE
// =============================================================================

func validProfile() generic.WorkerProfile {
	end := generic.MustParseClock("14:00")
	return generic.WorkerProfile{
		Name:           "pablo",
		HourlyRate:     decimal.NewFromInt(4850),
		ScheduledDays:  []time.Weekday{time.Saturday, time.Monday},
		ScheduledStart: generic.MustParseClock("08:00"),
		ScheduledEnd:   &end,
	}
}

func TestWorkerProfileValidate(t *testing.T) {
	require.NoError(t, validProfile().Validate())

	tests := []struct {
		name   string
		field  string
		mutate func(*generic.WorkerProfile)
	}{
		{"empty name", "name", func(p *generic.WorkerProfile) { p.Name = "" }},
		{"mixed case name", "name", func(p *generic.WorkerProfile) { p.Name = "Pablo" }},
		{"zero rate", "hourly_rate", func(p *generic.WorkerProfile) { p.HourlyRate = decimal.Zero }},
		{"no days", "scheduled_days", func(p *generic.WorkerProfile) { p.ScheduledDays = nil }},
		{"sunday", "scheduled_days", func(p *generic.WorkerProfile) { p.ScheduledDays = []time.Weekday{time.Sunday} }},
		{"duplicate", "scheduled_days", func(p *generic.WorkerProfile) {
			p.ScheduledDays = []time.Weekday{time.Monday, time.Monday}
		}},
		{"bad start", "scheduled_start", func(p *generic.WorkerProfile) { p.ScheduledStart = -1 }},
		{"end before start", "scheduled_end", func(p *generic.WorkerProfile) {
			end := generic.MustParseClock("07:00")
			p.ScheduledEnd = &end
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			err := p.Validate()
			var verr *generic.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, generic.ErrInvalidWorker)
		})
	}
}

func TestWorkerProfileDays(t *testing.T) {
	p := validProfile()

	assert.True(t, p.WorksOn(time.Monday))
	assert.False(t, p.WorksOn(time.Tuesday))
	assert.Equal(t, []time.Weekday{time.Monday, time.Saturday}, p.SortedDays())
	assert.Equal(t, []time.Weekday{time.Saturday, time.Monday}, p.ScheduledDays, "SortedDays does not reorder in place")
}

func TestBonusAmountsValidate(t *testing.T) {
	assert.NoError(t, generic.BonusAmounts{}.Validate())

	err := generic.BonusAmounts{Bonus1: decimal.Zero, Bonus2: decimal.NewFromInt(-1)}.Validate()
	assert.ErrorIs(t, err, generic.ErrInvalidBonus)
	assert.NotErrorIs(t, err, generic.ErrInvalidWorker)
}

// =============================================================================
// ERRORS
// =============================================================================

func TestErrorHelpers(t *testing.T) {
	unknown := &generic.UnknownWorkerError{Name: "ghost", Known: []string{"lucho", "pablo"}}
	assert.Equal(t, `worker "ghost" not found; known workers: lucho, pablo`, unknown.Error())
	assert.True(t, generic.IsNotFound(unknown))
	assert.True(t, generic.IsClientError(unknown))
	assert.False(t, generic.IsRetryable(unknown))

	cause := errors.New("connection refused")
	lookup := fmt.Errorf("process: %w", &generic.LookupError{Op: "lookup_worker", Err: cause})
	assert.True(t, generic.IsRetryable(lookup))
	assert.ErrorIs(t, lookup, cause)
	assert.False(t, generic.IsClientError(lookup))

	assert.True(t, generic.IsClientError(generic.ErrMissingName))
	assert.True(t, generic.IsNotFound(generic.ErrWorkerNotFound))
}
