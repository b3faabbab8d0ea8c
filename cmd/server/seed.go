package main

import (
	"context"
	"fmt"

	"github.com/warp/attendance-payroll/config"
	"github.com/warp/attendance-payroll/factory"
	"github.com/warp/attendance-payroll/generic"
	"go.uber.org/zap"
)

type seedableStore interface {
	generic.WorkerStore
	generic.BonusStore
	SeedWorkers(ctx context.Context, profiles []generic.WorkerProfile) (int, error)
}

// seedStore fills an empty directory with the configured workers, or the
// default roster when none are configured, and sets the bonus table when it
// is still zero/zero.
func seedStore(ctx context.Context, store seedableStore, seed config.SeedConfig, logger *zap.Logger) error {
	if !seed.Enabled {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	profiles, err := seedProfiles(seed)
	if err != nil {
		return err
	}
	n, err := store.SeedWorkers(ctx, profiles)
	if err != nil {
		return fmt.Errorf("failed to seed workers: %w", err)
	}
	if n > 0 {
		logger.Info("worker directory seeded", zap.Int("workers", n))
	}

	want, err := seed.BonusAmounts()
	if err != nil {
		return err
	}
	if want.Bonus1.IsZero() && want.Bonus2.IsZero() {
		return nil
	}
	have, err := store.LookupBonusAmounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to read bonus amounts: %w", err)
	}
	if !have.Bonus1.IsZero() || !have.Bonus2.IsZero() {
		return nil
	}
	if err := store.SetBonusAmounts(ctx, want); err != nil {
		return fmt.Errorf("failed to seed bonus amounts: %w", err)
	}
	logger.Info("bonus amounts seeded",
		zap.String("bonus1", want.Bonus1.String()),
		zap.String("bonus2", want.Bonus2.String()))
	return nil
}

func seedProfiles(seed config.SeedConfig) ([]generic.WorkerProfile, error) {
	f := factory.NewWorkerFactory()
	if len(seed.Workers) == 0 {
		return f.DefaultRoster()
	}

	profiles := make([]generic.WorkerProfile, 0, len(seed.Workers))
	for i, m := range seed.Workers {
		p, err := f.FromMap(m)
		if err != nil {
			return nil, fmt.Errorf("seed.workers[%d]: %w", i, err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}
