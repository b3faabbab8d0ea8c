/*
store.go - Collaborator interfaces read by the engine

PURPOSE:
  Defines the interface between the payroll rules and wherever worker
  profiles and bonus amounts are kept. The engine only reads; management
  surfaces write through the extended interfaces.

KEY INTERFACES:
  WorkerDirectory: name -> profile lookup, listing for error messages
  BonusTable:      the two bonus amounts
  WorkerStore:     WorkerDirectory + upsert/delete
  BonusStore:      BonusTable + update

CONTRACT:
  - LookupWorker takes a normalized name and returns ErrWorkerNotFound on miss.
  - ListWorkers returns profiles sorted by name.
  - LookupBonusAmounts returns zero/zero when nothing was ever stored.
  - Any other error is a collaborator failure; the engine wraps it in a
    LookupError and does not retry.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite tables workers / bonus_amounts
  - generic/store/memory.go: In-memory for tests and the CLI

SEE ALSO:
  - payroll/engine.go: the only reader
  - api/handlers.go: the writer
*/
package generic

import "context"

// WorkerDirectory maps normalized worker names to profiles.
type WorkerDirectory interface {
	// LookupWorker returns the profile for a normalized name.
	LookupWorker(ctx context.Context, name string) (*WorkerProfile, error)

	// ListWorkers returns every profile, sorted by name.
	ListWorkers(ctx context.Context) ([]WorkerProfile, error)
}

// BonusTable holds the configurable bonus amounts.
type BonusTable interface {
	LookupBonusAmounts(ctx context.Context) (BonusAmounts, error)
}

// WorkerStore extends WorkerDirectory with writes.
type WorkerStore interface {
	WorkerDirectory

	// SaveWorker inserts or replaces the profile with the same name.
	// The stored profile (with its ID) is returned.
	SaveWorker(ctx context.Context, p WorkerProfile) (*WorkerProfile, error)

	// DeleteWorker removes a worker. Returns ErrWorkerNotFound on miss.
	DeleteWorker(ctx context.Context, name string) error
}

// BonusStore extends BonusTable with writes.
type BonusStore interface {
	BonusTable

	SetBonusAmounts(ctx context.Context, b BonusAmounts) error
}
