package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance-payroll/api"
	"github.com/warp/attendance-payroll/config"
	"github.com/warp/attendance-payroll/store/sqlite"
	"go.uber.org/zap"
)

const testConfig = `
database:
  path: ":memory:"
log:
  level: error
  format: json
seed:
  enabled: true
  bonus1: "1000"
  bonus2: "500"
`

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append(args, "--config", path))
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), err
}

func TestProcessCommand_JSON(t *testing.T) {
	// GIVEN: the default roster, seeded on first open
	report := "Nombre: Pablo\n01 Lu 07:45 14:00\n02 Ma 07:40 14:10\n"

	// WHEN: the report is piped on stdin
	out, err := runCLI(t, report, "process", "-")
	require.NoError(t, err)

	// THEN: the result is printed as JSON with the seeded bonus applied
	var res api.PayrollResultDTO
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.Equal(t, "pablo", res.WorkerName)
	assert.Equal(t, 13, res.HoursWorked)
	assert.Equal(t, "bonus1", res.BonusKind)
	assert.True(t, decimal.NewFromInt(13*4850+1000).Equal(res.FinalPay))
}

func TestProcessCommand_Overrides(t *testing.T) {
	report := "Nombre: Pablo\n01 Lu 07:45 14:00\n02 Ma Falta\n"

	out, err := runCLI(t, report, "process", "-", "--justified", "02", "--holiday", "1")
	require.NoError(t, err)

	var res api.PayrollResultDTO
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.Equal(t, "holiday_worked", res.DayRecords[0].Status)
	assert.Equal(t, "absent_justified", res.DayRecords[1].Status)
	assert.Equal(t, 0, res.AbsentDaysCount)
}

func TestProcessCommand_CSVToFile(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(reportPath, []byte("Name: Lucho\n01 Mo 08:00 14:00\n"), 0o644))
	outPath := filepath.Join(t.TempDir(), "lucho.csv")

	_, err := runCLI(t, "", "process", reportPath, "--format", "csv", "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lucho,01,Mo,08:00,14:00,6.00,worked")
}

func TestProcessCommand_UnknownWorker(t *testing.T) {
	_, err := runCLI(t, "Nombre: Ghost\n01 Lu 08:00 14:00\n", "process", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "known workers:")
}

func TestWorkersCommand(t *testing.T) {
	out, err := runCLI(t, "", "workers")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "ricardo gall")
	assert.Contains(t, out, "[Ma Mi Ju Vi Sa]")
}

func TestSeedStore(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	seed := config.SeedConfig{
		Enabled: true,
		Workers: []map[string]any{
			{"name": "Pablo", "hourly_rate": 5000, "scheduled_days": []any{"Lu"}, "scheduled_start": "08:00"},
		},
		Bonus1: "100",
	}

	// GIVEN: an empty store
	require.NoError(t, seedStore(ctx, store, seed, zap.NewNop()))

	workers, err := store.ListWorkers(ctx)
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, "pablo", workers[0].Name)

	// WHEN: the bonus table is changed and the seed runs again
	b, err := store.LookupBonusAmounts(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(b.Bonus1))

	b.Bonus1 = decimal.NewFromInt(7)
	require.NoError(t, store.SetBonusAmounts(ctx, b))
	seed.Workers = nil
	require.NoError(t, seedStore(ctx, store, seed, zap.NewNop()))

	// THEN: existing data wins
	workers, err = store.ListWorkers(ctx)
	require.NoError(t, err)
	assert.Len(t, workers, 1)
	b, err = store.LookupBonusAmounts(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7).Equal(b.Bonus1))
}

func TestSeedStore_Disabled(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, seedStore(ctx, store, config.SeedConfig{Enabled: false}, zap.NewNop()))

	workers, err := store.ListWorkers(ctx)
	require.NoError(t, err)
	assert.Empty(t, workers)
}
