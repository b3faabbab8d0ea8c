package factory_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance-payroll/factory"
	"github.com/warp/attendance-payroll/generic"
)

func TestParseWorker_CurrentKeys(t *testing.T) {
	f := factory.NewWorkerFactory()

	p, err := f.ParseWorker(`{
		"name": "  Ricardo Gall ",
		"hourly_rate": "4850.50",
		"scheduled_days": ["Lu", "Tu", "wednesday"],
		"scheduled_start": "08:00",
		"scheduled_end": "14:00"
	}`)
	require.NoError(t, err)

	assert.Equal(t, "ricardo gall", p.Name)
	assert.True(t, decimal.RequireFromString("4850.50").Equal(p.HourlyRate))
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday}, p.ScheduledDays)
	assert.Equal(t, "08:00", p.ScheduledStart.String())
	require.NotNil(t, p.ScheduledEnd)
	assert.Equal(t, "14:00", p.ScheduledEnd.String())
}

func TestParseWorker_LegacyKeys(t *testing.T) {
	f := factory.NewWorkerFactory()

	p, err := f.ParseWorker(`{
		"nombre": "Caccho",
		"tarifa_hora": 4850,
		"dias_trabajo": ["Vi", "Sa", "Ma"],
		"hora_entrada_programada": "09:00"
	}`)
	require.NoError(t, err)

	assert.Equal(t, "caccho", p.Name)
	assert.True(t, decimal.NewFromInt(4850).Equal(p.HourlyRate))
	assert.Equal(t, []time.Weekday{time.Friday, time.Saturday, time.Tuesday}, p.ScheduledDays)
	assert.Nil(t, p.ScheduledEnd)
}

func TestParseWorker_Invalid(t *testing.T) {
	f := factory.NewWorkerFactory()

	tests := []struct {
		name  string
		json  string
		field string
	}{
		{"no name", `{"hourly_rate":1,"scheduled_days":["Lu"],"scheduled_start":"08:00"}`, "name"},
		{"zero rate", `{"name":"a","hourly_rate":0,"scheduled_days":["Lu"],"scheduled_start":"08:00"}`, "hourly_rate"},
		{"no days", `{"name":"a","hourly_rate":1,"scheduled_days":[],"scheduled_start":"08:00"}`, "scheduled_days"},
		{"sunday", `{"name":"a","hourly_rate":1,"scheduled_days":["Do"],"scheduled_start":"08:00"}`, "scheduled_days"},
		{"unknown day", `{"name":"a","hourly_rate":1,"scheduled_days":["Xx"],"scheduled_start":"08:00"}`, "scheduled_days"},
		{"bad start", `{"name":"a","hourly_rate":1,"scheduled_days":["Lu"],"scheduled_start":"8:00"}`, "scheduled_start"},
		{"end before start", `{"name":"a","hourly_rate":1,"scheduled_days":["Lu"],"scheduled_start":"08:00","scheduled_end":"07:00"}`, "scheduled_end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ParseWorker(tt.json)
			require.Error(t, err)

			var verr *generic.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, generic.ErrInvalidWorker)
			assert.True(t, generic.IsClientError(err))
		})
	}
}

func TestToJSON_RoundTripsThroughFactory(t *testing.T) {
	f := factory.NewWorkerFactory()
	p, err := f.ParseWorker(`{"name":"eze perez","hourly_rate":4850,"scheduled_days":["Ju","Vi","Sa","Mi"],"scheduled_start":"08:00"}`)
	require.NoError(t, err)

	wj := f.ToJSON(*p)
	assert.Equal(t, []string{"Mi", "Ju", "Vi", "Sa"}, wj.ScheduledDays, "canonical codes, Monday first")
	assert.Empty(t, wj.ScheduledEnd)

	data, err := json.Marshal(wj)
	require.NoError(t, err)
	again, err := f.ParseWorker(string(data))
	require.NoError(t, err)
	assert.Equal(t, p.Name, again.Name)
	assert.ElementsMatch(t, p.ScheduledDays, again.ScheduledDays)
}

func TestFromMap(t *testing.T) {
	f := factory.NewWorkerFactory()

	p, err := f.FromMap(map[string]any{
		"name":            "Lucho",
		"hourly_rate":     5000,
		"scheduled_days":  []any{"Mo", "Fr"},
		"scheduled_start": "07:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "lucho", p.Name)
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, p.ScheduledDays)
}

func TestDefaultRoster(t *testing.T) {
	profiles, err := factory.NewWorkerFactory().DefaultRoster()
	require.NoError(t, err)

	assert.Len(t, profiles, 11)
	names := map[string]bool{}
	for _, p := range profiles {
		assert.NoError(t, p.Validate())
		assert.False(t, names[p.Name], "duplicate %s", p.Name)
		names[p.Name] = true
	}
	assert.True(t, names["ricardo gall"])
}
