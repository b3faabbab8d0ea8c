package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance-payroll/generic"
	"github.com/warp/attendance-payroll/generic/store"
)

func profile(name string) generic.WorkerProfile {
	end := generic.MustParseClock("14:00")
	return generic.WorkerProfile{
		Name:           name,
		HourlyRate:     decimal.NewFromInt(4850),
		ScheduledDays:  []time.Weekday{time.Monday, time.Tuesday},
		ScheduledStart: generic.MustParseClock("08:00"),
		ScheduledEnd:   &end,
	}
}

func TestMemory_SaveLookupList(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	first, err := m.SaveWorker(ctx, profile(" Pablo "))
	require.NoError(t, err)
	assert.Equal(t, "pablo", first.Name)
	assert.NotEmpty(t, first.ID)

	// upsert keeps the ID
	update := profile("pablo")
	update.HourlyRate = decimal.NewFromInt(5000)
	second, err := m.SaveWorker(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = m.SaveWorker(ctx, profile("caccho"))
	require.NoError(t, err)

	got, err := m.LookupWorker(ctx, "PABLO")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(got.HourlyRate))

	all, err := m.ListWorkers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "caccho", all[0].Name)
	assert.Equal(t, "pablo", all[1].Name)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	_, err := m.SaveWorker(ctx, profile("pablo"))
	require.NoError(t, err)

	got, err := m.LookupWorker(ctx, "pablo")
	require.NoError(t, err)
	got.ScheduledDays[0] = time.Saturday
	*got.ScheduledEnd = generic.MustParseClock("20:00")

	again, err := m.LookupWorker(ctx, "pablo")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, again.ScheduledDays[0])
	assert.Equal(t, "14:00", again.ScheduledEnd.String())
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m, err := store.NewMemoryWith([]generic.WorkerProfile{profile("lucho")}, generic.BonusAmounts{})
	require.NoError(t, err)

	require.NoError(t, m.DeleteWorker(ctx, "Lucho"))
	_, err = m.LookupWorker(ctx, "lucho")
	assert.ErrorIs(t, err, generic.ErrWorkerNotFound)
	assert.ErrorIs(t, m.DeleteWorker(ctx, "lucho"), generic.ErrWorkerNotFound)
}

func TestMemory_Bonuses(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	b, err := m.LookupBonusAmounts(ctx)
	require.NoError(t, err)
	assert.True(t, b.Bonus1.IsZero())

	require.NoError(t, m.SetBonusAmounts(ctx, generic.BonusAmounts{Bonus1: decimal.NewFromInt(10), Bonus2: decimal.NewFromInt(5)}))
	b, err = m.LookupBonusAmounts(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(b.Bonus1))

	err = m.SetBonusAmounts(ctx, generic.BonusAmounts{Bonus1: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, generic.ErrInvalidBonus)
}

func TestNewMemoryWith_RejectsInvalid(t *testing.T) {
	bad := profile("x")
	bad.ScheduledDays = nil

	_, err := store.NewMemoryWith([]generic.WorkerProfile{bad}, generic.BonusAmounts{})
	assert.ErrorIs(t, err, generic.ErrInvalidWorker)
}
