/*
engine.go - Report to payroll pipeline

PURPOSE:
  Runs the full computation for one report:

    ParseReport -> LookupWorker -> Builder.BuildAll -> LookupBonusAmounts -> Aggregate

  The Engine is stateless between calls. When the caller toggles a holiday
  or justified date it simply calls ProcessReport again with new Overrides;
  records are never patched in place.

ERRORS:
  - MissingName:   *attendance.ParseError (client error)
  - UnknownWorker: *generic.UnknownWorkerError with the known names
  - LookupFailure: *generic.LookupError, retryable, also on timeout
  On any error the result is nil. There are no partial results.

CONCURRENCY:
  Safe for concurrent use. The only blocking points are the two lookups,
  each bounded by LookupTimeout.

SEE ALSO:
  - attendance/parser.go, attendance/builder.go
  - aggregate.go
*/
package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/warp/attendance-payroll/attendance"
	"github.com/warp/attendance-payroll/generic"
	"go.uber.org/zap"
)

const DefaultLookupTimeout = 5 * time.Second

// Overrides are the caller-supplied dates for one run.
type Overrides struct {
	Holidays  generic.DateSet
	Justified generic.DateSet
}

type Engine struct {
	directory     generic.WorkerDirectory
	bonuses       generic.BonusTable
	logger        *zap.Logger
	lookupTimeout time.Duration
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLookupTimeout bounds each collaborator call. Zero disables the bound.
func WithLookupTimeout(d time.Duration) Option {
	return func(e *Engine) { e.lookupTimeout = d }
}

func NewEngine(directory generic.WorkerDirectory, bonuses generic.BonusTable, opts ...Option) *Engine {
	e := &Engine{
		directory:     directory,
		bonuses:       bonuses,
		logger:        zap.NewNop(),
		lookupTimeout: DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessReport computes the payroll for one report.
func (e *Engine) ProcessReport(ctx context.Context, text string, ov Overrides) (*Result, error) {
	report, err := attendance.ParseReport(text)
	if err != nil {
		e.logger.Info("report rejected", zap.Error(err))
		return nil, err
	}
	log := e.logger.With(zap.String("worker", report.WorkerName))
	log.Debug("report parsed", zap.Int("day_lines", len(report.Lines)))

	profile, err := e.lookupWorker(ctx, report.WorkerName)
	if err != nil {
		log.Warn("worker lookup failed", zap.Error(err))
		return nil, err
	}

	records := attendance.NewBuilder(*profile, ov.Holidays, ov.Justified).BuildAll(report.Lines)
	log.Debug("day records built",
		zap.Int("records", len(records)),
		zap.Strings("holidays", ov.Holidays.Sorted()),
		zap.Strings("justified", ov.Justified.Sorted()))

	bonuses, err := e.lookupBonuses(ctx)
	if err != nil {
		log.Warn("bonus lookup failed", zap.Error(err))
		return nil, err
	}

	res := Aggregate(records, *profile, bonuses)
	log.Info("payroll computed",
		zap.Int("hours_worked", res.HoursWorked),
		zap.Int("hours_deducted", res.HoursDeducted),
		zap.Int("absent_days", res.AbsentDaysCount),
		zap.String("bonus", string(res.BonusKind)),
		zap.String("final_pay", res.FinalPay.StringFixed(2)))
	return res, nil
}

func (e *Engine) lookupWorker(ctx context.Context, name string) (*generic.WorkerProfile, error) {
	lctx, cancel := e.withTimeout(ctx)
	defer cancel()

	profile, err := e.directory.LookupWorker(lctx, name)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, generic.ErrWorkerNotFound) {
		return nil, &generic.LookupError{Op: "lookup_worker", Err: err}
	}

	workers, err := e.directory.ListWorkers(lctx)
	if err != nil {
		return nil, &generic.LookupError{Op: "list_workers", Err: err}
	}
	known := make([]string, len(workers))
	for i, w := range workers {
		known[i] = w.Name
	}
	return nil, &generic.UnknownWorkerError{Name: name, Known: known}
}

func (e *Engine) lookupBonuses(ctx context.Context) (generic.BonusAmounts, error) {
	lctx, cancel := e.withTimeout(ctx)
	defer cancel()

	b, err := e.bonuses.LookupBonusAmounts(lctx)
	if err != nil {
		return generic.BonusAmounts{}, &generic.LookupError{Op: "lookup_bonus_amounts", Err: err}
	}
	return b, nil
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.lookupTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.lookupTimeout)
}
