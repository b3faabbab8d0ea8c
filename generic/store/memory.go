// Package store provides in-memory implementations of the generic collaborators.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/warp/attendance-payroll/generic"
)

// =============================================================================
// MEMORY STORE - In-memory directory + bonus table (for testing/CLI)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	workers map[string]generic.WorkerProfile
	bonuses generic.BonusAmounts
}

var (
	_ generic.WorkerStore = (*Memory)(nil)
	_ generic.BonusStore  = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{workers: make(map[string]generic.WorkerProfile)}
}

// NewMemoryWith returns a store preloaded with profiles and bonuses.
// Invalid profiles are rejected.
func NewMemoryWith(profiles []generic.WorkerProfile, bonuses generic.BonusAmounts) (*Memory, error) {
	m := NewMemory()
	for _, p := range profiles {
		if _, err := m.SaveWorker(context.Background(), p); err != nil {
			return nil, err
		}
	}
	if err := m.SetBonusAmounts(context.Background(), bonuses); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Memory) LookupWorker(_ context.Context, name string) (*generic.WorkerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.workers[generic.NormalizeName(name)]
	if !ok {
		return nil, generic.ErrWorkerNotFound
	}
	p = clone(p)
	return &p, nil
}

func (m *Memory) ListWorkers(_ context.Context) ([]generic.WorkerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]generic.WorkerProfile, 0, len(m.workers))
	for _, p := range m.workers {
		result = append(result, clone(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// SaveWorker upserts by name. An existing ID is kept.
func (m *Memory) SaveWorker(_ context.Context, p generic.WorkerProfile) (*generic.WorkerProfile, error) {
	p.Name = generic.NormalizeName(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.workers[p.Name]; ok {
		p.ID = existing.ID
	} else if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p = clone(p)
	m.workers[p.Name] = p
	out := clone(p)
	return &out, nil
}

func (m *Memory) DeleteWorker(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = generic.NormalizeName(name)
	if _, ok := m.workers[name]; !ok {
		return generic.ErrWorkerNotFound
	}
	delete(m.workers, name)
	return nil
}

func (m *Memory) LookupBonusAmounts(_ context.Context) (generic.BonusAmounts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bonuses, nil
}

func (m *Memory) SetBonusAmounts(_ context.Context, b generic.BonusAmounts) error {
	if err := b.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bonuses = b
	return nil
}

// clone copies the slice and pointer fields so callers cannot mutate stored state.
func clone(p generic.WorkerProfile) generic.WorkerProfile {
	p.ScheduledDays = append([]time.Weekday(nil), p.ScheduledDays...)
	if p.ScheduledEnd != nil {
		end := *p.ScheduledEnd
		p.ScheduledEnd = &end
	}
	return p
}
