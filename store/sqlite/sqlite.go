/*
Package sqlite provides a SQLite-backed implementation of the collaborator interfaces.

PURPOSE:
  Keeps the worker directory and the bonus table in SQLite so the payroll
  engine, the admin API and the CLI all read the same configuration.

INTERFACES IMPLEMENTED:
  generic.WorkerDirectory / generic.WorkerStore: workers table
  generic.BonusTable / generic.BonusStore:       bonus_amounts table

KEY TABLES:
  workers:        one row per worker, unique normalized name
  bonus_amounts:  at most one row (id = 1); absent row means zero/zero

ENCODING:
  - hourly_rate and bonus amounts are stored as decimal TEXT, never REAL
  - scheduled_days is a comma-separated list of canonical codes ("Lu,Ma,Mi")
  - clock times are stored as "HH:MM"

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, on top of SQLite WAL mode.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := payroll.NewEngine(store, store)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/attendance-payroll/generic"
)

// Store implements the worker directory and bonus table using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ generic.WorkerStore = (*Store)(nil)
	_ generic.BonusStore  = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Workers (directory)
	CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		hourly_rate TEXT NOT NULL,
		scheduled_days TEXT NOT NULL,
		scheduled_start TEXT NOT NULL,
		scheduled_end TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_workers_name
		ON workers(name);

	-- Bonus amounts (single row)
	CREATE TABLE IF NOT EXISTS bonus_amounts (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		bonus1 TEXT NOT NULL,
		bonus2 TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// WORKER STORE (generic.WorkerStore interface)
// =============================================================================

const workerColumns = "id, name, hourly_rate, scheduled_days, scheduled_start, scheduled_end"

// LookupWorker retrieves a worker by normalized name.
func (s *Store) LookupWorker(ctx context.Context, name string) (*generic.WorkerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+workerColumns+" FROM workers WHERE name = ?",
		generic.NormalizeName(name),
	)
	p, err := scanWorker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, generic.ErrWorkerNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListWorkers returns all workers ordered by name.
func (s *Store) ListWorkers(ctx context.Context) ([]generic.WorkerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+workerColumns+" FROM workers ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := []generic.WorkerProfile{}
	for rows.Next() {
		p, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, *p)
	}
	return workers, rows.Err()
}

// SaveWorker inserts or updates a worker, keyed by name.
func (s *Store) SaveWorker(ctx context.Context, p generic.WorkerProfile) (*generic.WorkerProfile, error) {
	p.Name = generic.NormalizeName(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := saveWorker(ctx, s.db, p); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+workerColumns+" FROM workers WHERE name = ?", p.Name)
	return scanWorker(row)
}

// DeleteWorker removes a worker by name.
func (s *Store) DeleteWorker(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM workers WHERE name = ?", generic.NormalizeName(name))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return generic.ErrWorkerNotFound
	}
	return nil
}

// SeedWorkers inserts the profiles only when the directory is empty.
// It returns the number of workers inserted.
func (s *Store) SeedWorkers(ctx context.Context, profiles []generic.WorkerProfile) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM workers").Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, p := range profiles {
		p.Name = generic.NormalizeName(p.Name)
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("seed worker %q: %w", p.Name, err)
		}
		if err := saveWorker(ctx, tx, p); err != nil {
			return 0, fmt.Errorf("seed worker %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(profiles), nil
}

func saveWorker(ctx context.Context, db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}, p generic.WorkerProfile) error {
	query := `
		INSERT INTO workers (` + workerColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			hourly_rate = excluded.hourly_rate,
			scheduled_days = excluded.scheduled_days,
			scheduled_start = excluded.scheduled_start,
			scheduled_end = excluded.scheduled_end,
			updated_at = excluded.updated_at
	`

	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}

	var end sql.NullString
	if p.ScheduledEnd != nil {
		end = sql.NullString{String: p.ScheduledEnd.String(), Valid: true}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := db.ExecContext(ctx, query,
		id, p.Name, p.HourlyRate.String(), encodeDays(p.ScheduledDays),
		p.ScheduledStart.String(), end, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save worker: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorker(row scanner) (*generic.WorkerProfile, error) {
	var p generic.WorkerProfile
	var rate, days, start string
	var end sql.NullString

	if err := row.Scan(&p.ID, &p.Name, &rate, &days, &start, &end); err != nil {
		return nil, err
	}

	var err error
	if p.HourlyRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("worker %q: bad hourly_rate %q: %w", p.Name, rate, err)
	}
	if p.ScheduledDays, err = decodeDays(days); err != nil {
		return nil, fmt.Errorf("worker %q: %w", p.Name, err)
	}
	if p.ScheduledStart, err = generic.ParseClock(start); err != nil {
		return nil, fmt.Errorf("worker %q: %w", p.Name, err)
	}
	if end.Valid && end.String != "" {
		c, err := generic.ParseClock(end.String)
		if err != nil {
			return nil, fmt.Errorf("worker %q: %w", p.Name, err)
		}
		p.ScheduledEnd = &c
	}
	return &p, nil
}

func encodeDays(days []time.Weekday) string {
	codes := make([]string, len(days))
	for i, d := range days {
		codes[i] = generic.WeekdayCode(d)
	}
	return strings.Join(codes, ",")
}

func decodeDays(s string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, code := range strings.Split(s, ",") {
		if code == "" {
			continue
		}
		d, ok := generic.ParseWeekdayCode(code)
		if !ok {
			return nil, fmt.Errorf("bad scheduled day %q", code)
		}
		days = append(days, d)
	}
	return days, nil
}

// =============================================================================
// BONUS TABLE (generic.BonusStore interface)
// =============================================================================

// LookupBonusAmounts returns the stored amounts, or zero/zero when unset.
func (s *Store) LookupBonusAmounts(ctx context.Context) (generic.BonusAmounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b1, b2 string
	err := s.db.QueryRowContext(ctx, "SELECT bonus1, bonus2 FROM bonus_amounts WHERE id = 1").Scan(&b1, &b2)
	if errors.Is(err, sql.ErrNoRows) {
		return generic.BonusAmounts{Bonus1: decimal.Zero, Bonus2: decimal.Zero}, nil
	}
	if err != nil {
		return generic.BonusAmounts{}, err
	}

	var out generic.BonusAmounts
	if out.Bonus1, err = decimal.NewFromString(b1); err != nil {
		return generic.BonusAmounts{}, fmt.Errorf("bad bonus1 %q: %w", b1, err)
	}
	if out.Bonus2, err = decimal.NewFromString(b2); err != nil {
		return generic.BonusAmounts{}, fmt.Errorf("bad bonus2 %q: %w", b2, err)
	}
	return out, nil
}

// SetBonusAmounts replaces the stored amounts.
func (s *Store) SetBonusAmounts(ctx context.Context, b generic.BonusAmounts) error {
	if err := b.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO bonus_amounts (id, bonus1, bonus2, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			bonus1 = excluded.bonus1,
			bonus2 = excluded.bonus2,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		b.Bonus1.String(), b.Bonus2.String(), time.Now().UTC().Format(time.RFC3339))
	return err
}
