package factory

import (
	"github.com/shopspring/decimal"
	"github.com/warp/attendance-payroll/generic"
)

var weekdaysLuVi = []string{"Lu", "Ma", "Mi", "Ju", "Vi"}

// defaultRoster is the shop staff the directory is seeded with on first start.
var defaultRoster = []WorkerJSON{
	roster("ricardo gall", weekdaysLuVi, "08:00"),
	roster("eze perez", []string{"Mi", "Ju", "Vi", "Sa"}, "08:00"),
	roster("pablo", weekdaysLuVi, "08:00"),
	roster("caccho", []string{"Ma", "Mi", "Ju", "Vi", "Sa"}, "09:00"),
	roster("camilo palle", []string{"Lu", "Ma", "Mi", "Ju", "Vi", "Sa"}, "08:00"),
	roster("ezequiel par", weekdaysLuVi, "08:00"),
	roster("alexis perez", weekdaysLuVi, "08:00"),
	roster("jesus diaz", weekdaysLuVi, "08:00"),
	roster("franco lopez", weekdaysLuVi, "08:00"),
	roster("lucho", weekdaysLuVi, "08:00"),
	roster("valentino", weekdaysLuVi, "08:00"),
}

func roster(name string, days []string, start string) WorkerJSON {
	return WorkerJSON{
		Name:           name,
		HourlyRate:     decimal.NewFromInt(4850),
		ScheduledDays:  days,
		ScheduledStart: start,
		ScheduledEnd:   "14:00",
	}
}

// DefaultRoster returns validated copies of the default roster.
func (f *WorkerFactory) DefaultRoster() ([]generic.WorkerProfile, error) {
	profiles := make([]generic.WorkerProfile, 0, len(defaultRoster))
	for _, wj := range defaultRoster {
		p, err := f.FromJSON(wj)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}
